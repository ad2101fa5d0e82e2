package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/okrboard/internal/domain/activity"
)

// ActivityRepository stores the activity log in the activity_log table.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates an ActivityRepository.
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log appends entry and fills in its ID.
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (project_id, activity_type, summary, created_at)
		VALUES (?, ?, ?, ?)
	`, entry.ProjectID, entry.ActivityType, entry.Summary, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// List returns matching entries in reverse insertion order.
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	var (
		where []string
		args  []any
	)
	if opts.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if len(opts.Types) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(opts.Types)), ",")
		where = append(where, "activity_type IN ("+marks+")")
		for _, t := range opts.Types {
			args = append(args, t)
		}
	}
	if !opts.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.Since.UTC())
	}

	var q strings.Builder
	q.WriteString("SELECT id, project_id, activity_type, summary, created_at FROM activity_log")
	if len(where) > 0 {
		q.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	q.WriteString(" ORDER BY id DESC")
	if opts.Limit > 0 {
		q.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, opts.Limit, max(opts.Offset, 0))
	}

	rows, err := r.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.ActivityEntry{}
	for rows.Next() {
		var e activity.ActivityEntry
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.ActivityType, &e.Summary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}

// DeleteBefore removes entries created before the cutoff.
func (r *ActivityRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM activity_log WHERE created_at < ?", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}
	return result.RowsAffected()
}
