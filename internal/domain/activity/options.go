package activity

import "time"

// ListActivityOptions filters a listing. Zero values match everything.
type ListActivityOptions struct {
	ProjectID string
	Types     []ActivityType
	Since     time.Time
	Limit     int
	Offset    int
}
