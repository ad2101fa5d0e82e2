package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	created := &activity.ActivityEntry{ProjectID: "proj-1", ActivityType: activity.TypeObjectiveCreated, Summary: `created objective "Grow"`}
	added := &activity.ActivityEntry{ProjectID: "proj-1", ActivityType: activity.TypeKeyResultAdded, Summary: `added key result "Deals"`}
	require.NoError(t, repo.Log(ctx, created))
	require.NoError(t, repo.Log(ctx, added))
	require.NotZero(t, created.ID)
	require.Greater(t, added.ID, created.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{ProjectID: "proj-1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeKeyResultAdded, entries[0].ActivityType)
	require.Equal(t, activity.TypeObjectiveCreated, entries[1].ActivityType)
	require.WithinDuration(t, created.CreatedAt, entries[1].CreatedAt, time.Second)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range []*activity.ActivityEntry{
		{ProjectID: "proj-1", ActivityType: activity.TypeCycleAdded, Summary: "a", CreatedAt: old},
		{ProjectID: "proj-1", ActivityType: activity.TypeCycleActivated, Summary: "b", CreatedAt: recent},
		{ProjectID: "proj-1", ActivityType: activity.TypeCycleDeleted, Summary: "c", CreatedAt: recent},
		{ProjectID: "proj-2", ActivityType: activity.TypeCycleAdded, Summary: "d", CreatedAt: recent},
	} {
		require.NoError(t, repo.Log(ctx, e))
	}

	entries, err := repo.List(ctx, activity.ListActivityOptions{
		ProjectID: "proj-1",
		Types:     []activity.ActivityType{activity.TypeCycleAdded, activity.TypeCycleDeleted},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "c", entries[0].Summary)
	require.Equal(t, "a", entries[1].Summary)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Since: recent.Add(-time.Hour)})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "c", entries[0].Summary)

	entries, err = repo.List(ctx, activity.ListActivityOptions{ProjectID: "proj-3"})
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestActivityRepository_DeleteBefore(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ActivityType: activity.TypeProjectCreated, CreatedAt: cutoff.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ActivityType: activity.TypeProjectDeleted, CreatedAt: cutoff.Add(-time.Second)}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ActivityType: activity.TypeCycleAdded, CreatedAt: cutoff}))

	n, err := repo.DeleteBefore(ctx, cutoff)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, activity.TypeCycleAdded, entries[0].ActivityType)
}
