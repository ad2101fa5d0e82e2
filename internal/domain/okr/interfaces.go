package okr

import (
	"context"

	"github.com/rpggio/okrboard/internal/domain/activity"
)

// Repository persists named document slots.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// ActivityLogger records committed mutations.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}

// Notifier announces that the data changed. It carries no payload.
type Notifier interface {
	Notify(ctx context.Context)
}
