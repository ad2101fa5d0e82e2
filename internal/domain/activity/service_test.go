package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/rpggio/okrboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		ProjectID:    "proj1",
		ActivityType: activity.TypeObjectiveCreated,
		Summary:      "  created  ",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{ProjectID: "proj1", Limit: 50}).Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())
	require.Equal(t, time.UTC, entry.CreatedAt.Location())
	require.Equal(t, "created", entry.Summary)

	entries, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{ProjectID: "proj1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_LogValidation(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), &activity.ActivityEntry{}), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), &activity.ActivityEntry{ActivityType: "objective_renamed"}), activity.ErrInvalidInput)
}

func TestActivityService_LogWrapsRepositoryError(t *testing.T) {
	ctx := context.Background()
	repoErr := errors.New("disk full")

	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.Anything).Return(repoErr)

	svc := activity.NewService(repo, nil)
	err := svc.LogActivity(ctx, &activity.ActivityEntry{ActivityType: activity.TypeCycleAdded})
	require.ErrorIs(t, err, repoErr)
}

func TestActivityService_ListLimits(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("List", ctx, activity.ListActivityOptions{Limit: 500}).Return(nil, nil)

	svc := activity.NewService(repo, nil)
	entries, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{Limit: 10_000})
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)

	_, err = svc.GetRecentActivity(ctx, activity.ListActivityOptions{Offset: -1})
	require.ErrorIs(t, err, activity.ErrInvalidInput)

	_, err = svc.GetRecentActivity(ctx, activity.ListActivityOptions{Types: []activity.ActivityType{"nope"}})
	require.ErrorIs(t, err, activity.ErrInvalidInput)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestActivityService_Prune(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	repo := &mocks.ActivityRepository{}
	repo.On("DeleteBefore", ctx, now.Add(-30*24*time.Hour)).Return(int64(7), nil)

	svc := activity.NewService(repo, nil)
	svc.SetClock(func() time.Time { return now })

	n, err := svc.Prune(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	require.EqualValues(t, 7, n)

	_, err = svc.Prune(ctx, 0)
	require.ErrorIs(t, err, activity.ErrInvalidInput)
	repo.AssertExpectations(t)
}

func TestParseType(t *testing.T) {
	got, err := activity.ParseType("key_result_updated")
	require.NoError(t, err)
	require.Equal(t, activity.TypeKeyResultUpdated, got)

	_, err = activity.ParseType("Key_Result_Updated")
	require.ErrorIs(t, err, activity.ErrInvalidInput)
}
