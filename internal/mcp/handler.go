package mcp

import (
	"context"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/rpggio/okrboard/internal/domain/okr"
)

// Handler implements the MCP tools on top of the store.
type Handler struct {
	store    Store
	activity ActivityService
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandler creates a new MCP handler.
func NewHandler(store Store, activitySvc ActivityService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		store:    store,
		activity: activitySvc,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *Handler) ping(_ context.Context, _ *sdkmcp.CallToolRequest, _ PingParams) (*sdkmcp.CallToolResult, PingResponse, error) {
	return nil, PingResponse{Status: "ok", Time: h.now().UTC().Format(time.RFC3339)}, nil
}

func (h *Handler) listProjects(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResponse, error) {
	summaries := h.store.Projects()
	resp := ListProjectsResponse{Projects: make([]ProjectSummaryResponse, 0, len(summaries))}
	for _, s := range summaries {
		resp.Projects = append(resp.Projects, ProjectSummaryResponse{
			ID:             s.ID,
			Name:           s.Name,
			ActiveCycle:    s.ActiveCycle,
			ObjectiveCount: s.ObjectiveCount,
			Current:        s.Current,
		})
	}
	return nil, resp, nil
}

func (h *Handler) getProject(_ context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
	p, ok := h.store.CurrentProject()
	if !ok {
		return nil, ProjectResponse{}, MapError(okr.ErrNoProject)
	}
	return nil, projectResponse(p, in.AllCycles), nil
}

func (h *Handler) selectProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in SelectProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
	if err := h.store.SelectProject(ctx, strings.TrimSpace(in.ID)); err != nil {
		return nil, ProjectResponse{}, MapError(err)
	}
	p, ok := h.store.CurrentProject()
	if !ok {
		return nil, ProjectResponse{}, MapError(okr.ErrNoProject)
	}
	return nil, projectResponse(p, false), nil
}

func (h *Handler) createObjective(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateObjectiveParams) (*sdkmcp.CallToolResult, ObjectiveResponse, error) {
	draft := okr.ObjectiveDraft{
		OwnerID: in.OwnerID,
		Title:   in.Title,
		Notes:   in.Notes,
	}
	for _, kr := range in.KeyResults {
		draft.KeyResults = append(draft.KeyResults, okr.KeyResultDraft{
			Title:        kr.Title,
			StartValue:   kr.StartValue,
			TargetValue:  kr.TargetValue,
			CurrentValue: kr.CurrentValue,
		})
	}

	obj, err := h.store.CreateObjectiveWithKeyResults(ctx, draft)
	if err != nil {
		return nil, ObjectiveResponse{}, MapError(err)
	}
	h.logger.Info("objective created by assistant", "objective_id", obj.ID, "key_results", len(obj.KeyResults))

	p, ok := h.store.CurrentProject()
	if !ok {
		return nil, ObjectiveResponse{}, MapError(okr.ErrNoProject)
	}
	return nil, objectiveResponse(p, obj), nil
}

func (h *Handler) updateKeyResult(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateKeyResultParams) (*sdkmcp.CallToolResult, ObjectiveResponse, error) {
	p, ok := h.store.CurrentProject()
	if !ok {
		return nil, ObjectiveResponse{}, MapError(okr.ErrNoProject)
	}
	obj, ok := p.Objective(in.ObjectiveID)
	if !ok {
		return nil, ObjectiveResponse{}, MapError(okr.ErrObjectiveNotFound)
	}
	kr, ok := obj.KeyResult(in.KeyResultID)
	if !ok {
		return nil, ObjectiveResponse{}, MapError(okr.ErrKeyResultNotFound)
	}

	update := okr.KeyResultInput{
		Title:        kr.Title,
		StartValue:   kr.StartValue,
		TargetValue:  kr.TargetValue,
		CurrentValue: kr.CurrentValue,
	}
	if in.Title != nil {
		update.Title = *in.Title
	}
	if in.StartValue != nil {
		update.StartValue = *in.StartValue
	}
	if in.TargetValue != nil {
		update.TargetValue = *in.TargetValue
	}
	if in.CurrentValue != nil {
		update.CurrentValue = *in.CurrentValue
	}
	if err := h.store.UpdateKeyResult(ctx, in.ObjectiveID, in.KeyResultID, update); err != nil {
		return nil, ObjectiveResponse{}, MapError(err)
	}

	p, ok = h.store.CurrentProject()
	if !ok {
		return nil, ObjectiveResponse{}, MapError(okr.ErrNoProject)
	}
	obj, ok = p.Objective(in.ObjectiveID)
	if !ok {
		return nil, ObjectiveResponse{}, MapError(okr.ErrObjectiveNotFound)
	}
	return nil, objectiveResponse(p, obj), nil
}

func (h *Handler) getRecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, ActivityResponse, error) {
	if h.activity == nil {
		return nil, ActivityResponse{Entries: []ActivityEntryResponse{}}, nil
	}
	opts := activity.ListActivityOptions{
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if p, ok := h.store.CurrentProject(); ok {
		opts.ProjectID = p.ID
	}
	if in.ActivityType != "" {
		t, err := activity.ParseType(in.ActivityType)
		if err != nil {
			return nil, ActivityResponse{}, MapError(err)
		}
		opts.Types = []activity.ActivityType{t}
	}

	entries, err := h.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, ActivityResponse{}, MapError(err)
	}
	resp := ActivityResponse{Entries: make([]ActivityEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, ActivityEntryResponse{
			ID:        e.ID,
			ProjectID: e.ProjectID,
			Type:      string(e.ActivityType),
			Summary:   e.Summary,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return nil, resp, nil
}

// projectResponse renders p. Unless allCycles is set, only objectives of the
// active cycle are included.
func projectResponse(p *okr.Project, allCycles bool) ProjectResponse {
	resp := ProjectResponse{
		ID:         p.ID,
		Name:       p.Name,
		Mission:    p.Foundation.Mission,
		Vision:     p.Foundation.Vision,
		Teams:      make([]TeamResponse, 0, len(p.Teams)),
		Cycles:     make([]CycleResponse, 0, len(p.Cycles)),
		Objectives: []ObjectiveResponse{},
	}
	for _, t := range p.Teams {
		resp.Teams = append(resp.Teams, TeamResponse{ID: t.ID, Name: t.Name})
	}
	for _, c := range p.Cycles {
		resp.Cycles = append(resp.Cycles, cycleResponse(c))
	}

	active, hasActive := p.ActiveCycle()
	if hasActive {
		c := cycleResponse(*active)
		resp.ActiveCycle = &c
	}
	for i := range p.Objectives {
		obj := &p.Objectives[i]
		if !allCycles && (!hasActive || obj.CycleID != active.ID) {
			continue
		}
		resp.Objectives = append(resp.Objectives, objectiveResponse(p, obj))
	}
	return resp
}

func cycleResponse(c okr.Cycle) CycleResponse {
	return CycleResponse{
		ID:        c.ID,
		Name:      c.Name,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Status:    string(c.Status),
	}
}

func objectiveResponse(p *okr.Project, obj *okr.Objective) ObjectiveResponse {
	resp := ObjectiveResponse{
		ID:         obj.ID,
		Title:      obj.Title,
		OwnerID:    obj.OwnerID,
		Owner:      p.OwnerName(obj.OwnerID),
		CycleID:    obj.CycleID,
		Notes:      obj.Notes,
		Progress:   obj.Progress,
		KeyResults: make([]KeyResultResponse, 0, len(obj.KeyResults)),
	}
	if c, ok := p.Cycle(obj.CycleID); ok {
		resp.Cycle = c.Name
	}
	for _, kr := range obj.KeyResults {
		resp.KeyResults = append(resp.KeyResults, KeyResultResponse{
			ID:           kr.ID,
			Title:        kr.Title,
			StartValue:   kr.StartValue,
			TargetValue:  kr.TargetValue,
			CurrentValue: kr.CurrentValue,
			Progress:     kr.Progress,
		})
	}
	return resp
}
