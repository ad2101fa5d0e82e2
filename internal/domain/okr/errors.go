package okr

import "errors"

var (
	// ErrInvalidInput indicates a blank name/title or a malformed value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoProject indicates no project is selected.
	ErrNoProject = errors.New("no project selected")
	// ErrNoActiveCycle indicates objectives cannot be added without an Active cycle.
	ErrNoActiveCycle = errors.New("no active cycle: activate a cycle before adding objectives")
	// ErrLastCycle indicates the cycle is the only one left in its project.
	ErrLastCycle = errors.New("cannot delete the last cycle of a project")
	// ErrActiveCycle indicates the Active cycle cannot be deleted.
	ErrActiveCycle = errors.New("cannot delete the active cycle: activate another cycle first")
	// ErrInvalidProject indicates a replacement project breaks a structural invariant.
	ErrInvalidProject = errors.New("invalid project")

	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrCycleNotFound indicates the cycle doesn't exist in the current project.
	ErrCycleNotFound = errors.New("cycle not found")
	// ErrObjectiveNotFound indicates the objective doesn't exist in the current project.
	ErrObjectiveNotFound = errors.New("objective not found")
	// ErrKeyResultNotFound indicates the key result doesn't exist on the objective.
	ErrKeyResultNotFound = errors.New("key result not found")
)

// IsRejection reports whether err is a business-rule rejection meant to be
// shown to the user as a warning, as opposed to a lookup miss or a storage failure.
func IsRejection(err error) bool {
	for _, target := range []error{ErrInvalidInput, ErrNoProject, ErrNoActiveCycle, ErrLastCycle, ErrActiveCycle, ErrInvalidProject} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool {
	for _, target := range []error{ErrProjectNotFound, ErrCycleNotFound, ErrObjectiveNotFound, ErrKeyResultNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
