package repository

import (
	"context"
	"time"

	"github.com/rpggio/okrboard/internal/domain/activity"
)

// SlotRepository stores opaque documents under well-known keys
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
