package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/rpggio/okrboard/internal/domain/okr"
)

// APIError is the coded error returned to MCP clients.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps store errors to coded API errors. Errors it does not
// recognize are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, okr.ErrNoProject):
		return &APIError{Code: "NO_PROJECT", Message: "no project selected", RecoveryHint: "Call list_projects then select_project"}
	case errors.Is(err, okr.ErrNoActiveCycle):
		return &APIError{Code: "NO_ACTIVE_CYCLE", Message: "the current project has no active cycle", RecoveryHint: "Ask the user to activate a cycle"}
	case errors.Is(err, okr.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "a required name or title is blank, or a value is malformed"}
	case errors.Is(err, okr.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check ids with list_projects"}
	case errors.Is(err, okr.ErrObjectiveNotFound):
		return &APIError{Code: "OBJECTIVE_NOT_FOUND", Message: "objective not found", RecoveryHint: "Check ids with get_project"}
	case errors.Is(err, okr.ErrKeyResultNotFound):
		return &APIError{Code: "KEY_RESULT_NOT_FOUND", Message: "key result not found", RecoveryHint: "Check ids with get_project"}
	case errors.Is(err, okr.ErrCycleNotFound):
		return &APIError{Code: "CYCLE_NOT_FOUND", Message: "cycle not found"}
	default:
		return err
	}
}
