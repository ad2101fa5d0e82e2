// Package activity keeps a log of committed store mutations, one entry per
// change, so users and assistants can see what happened recently.
package activity

import (
	"fmt"
	"time"
)

// ActivityType names the kind of mutation an entry records.
type ActivityType string

const (
	TypeProjectCreated     ActivityType = "project_created"
	TypeProjectDeleted     ActivityType = "project_deleted"
	TypeCycleAdded         ActivityType = "cycle_added"
	TypeCycleActivated     ActivityType = "cycle_activated"
	TypeCycleDeleted       ActivityType = "cycle_deleted"
	TypeFoundationUpdated  ActivityType = "foundation_updated"
	TypeObjectiveCreated   ActivityType = "objective_created"
	TypeObjectiveUpdated   ActivityType = "objective_updated"
	TypeObjectiveDeleted   ActivityType = "objective_deleted"
	TypeKeyResultAdded     ActivityType = "key_result_added"
	TypeKeyResultUpdated   ActivityType = "key_result_updated"
	TypeKeyResultDeleted   ActivityType = "key_result_deleted"
	TypeObjectivesImported ActivityType = "objectives_imported"
)

// AllTypes lists every known activity type.
var AllTypes = []ActivityType{
	TypeProjectCreated,
	TypeProjectDeleted,
	TypeCycleAdded,
	TypeCycleActivated,
	TypeCycleDeleted,
	TypeFoundationUpdated,
	TypeObjectiveCreated,
	TypeObjectiveUpdated,
	TypeObjectiveDeleted,
	TypeKeyResultAdded,
	TypeKeyResultUpdated,
	TypeKeyResultDeleted,
	TypeObjectivesImported,
}

// ParseType returns the activity type named s.
func ParseType(s string) (ActivityType, error) {
	for _, t := range AllTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, s)
}

// ActivityEntry is one line of the log. ProjectID is empty for changes that
// are not scoped to a project.
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    string       `json:"project_id"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	CreatedAt    time.Time    `json:"created_at"`
}
