package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/rpggio/okrboard/internal/domain/okr"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{okr.ErrNoProject, "NO_PROJECT"},
		{okr.ErrNoActiveCycle, "NO_ACTIVE_CYCLE"},
		{fmt.Errorf("title: %w", okr.ErrInvalidInput), "INVALID_INPUT"},
		{fmt.Errorf("filter: %w", activity.ErrInvalidInput), "INVALID_INPUT"},
		{okr.ErrProjectNotFound, "PROJECT_NOT_FOUND"},
		{okr.ErrObjectiveNotFound, "OBJECTIVE_NOT_FOUND"},
		{okr.ErrKeyResultNotFound, "KEY_RESULT_NOT_FOUND"},
		{okr.ErrCycleNotFound, "CYCLE_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			var apiErr *APIError
			require.True(t, errors.As(MapError(tt.err), &apiErr))
			require.Equal(t, tt.code, apiErr.Code)
			require.Contains(t, apiErr.Error(), tt.code+": ")
		})
	}
}

func TestMapError_Passthrough(t *testing.T) {
	require.NoError(t, MapError(nil))

	storage := errors.New("disk full")
	require.Same(t, storage, MapError(storage))
}

func TestProjectResponse_NoActiveCycle(t *testing.T) {
	p := &okr.Project{
		ID:     "proj-1",
		Name:   "Acme",
		Teams:  []okr.Team{{ID: "team-1", Name: "Sales"}},
		Cycles: []okr.Cycle{{ID: "cycle-1", Name: "Q1", Status: okr.CycleArchived}},
		Objectives: []okr.Objective{
			{ID: "obj-1", CycleID: "cycle-1", OwnerID: "team-gone", Title: "Orphan"},
		},
	}

	resp := projectResponse(p, false)
	require.Nil(t, resp.ActiveCycle)
	require.Empty(t, resp.Objectives)

	resp = projectResponse(p, true)
	require.Len(t, resp.Objectives, 1)
	require.Equal(t, okr.UnknownOwner, resp.Objectives[0].Owner)
	require.Equal(t, "Q1", resp.Objectives[0].Cycle)
	require.NotNil(t, resp.Objectives[0].KeyResults)
}
