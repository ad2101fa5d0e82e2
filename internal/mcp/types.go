package mcp

// PingParams is empty.
type PingParams struct{}

type PingResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type ListProjectsParams struct{}

type ListProjectsResponse struct {
	Projects []ProjectSummaryResponse `json:"projects"`
}

type ProjectSummaryResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ActiveCycle    string `json:"active_cycle,omitempty"`
	ObjectiveCount int    `json:"objective_count"`
	Current        bool   `json:"current"`
}

type GetProjectParams struct {
	AllCycles bool `json:"all_cycles,omitempty" jsonschema:"Include objectives from every cycle, not only the active one"`
}

type SelectProjectParams struct {
	ID string `json:"id" jsonschema:"Project ID from list_projects"`
}

// ProjectResponse is the current project as seen by an assistant: owners are
// resolved to names and progress is precomputed.
type ProjectResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Mission     string              `json:"mission,omitempty"`
	Vision      string              `json:"vision,omitempty"`
	Teams       []TeamResponse      `json:"teams"`
	ActiveCycle *CycleResponse      `json:"active_cycle,omitempty"`
	Cycles      []CycleResponse     `json:"cycles"`
	Objectives  []ObjectiveResponse `json:"objectives"`
}

type TeamResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CycleResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Status    string `json:"status"`
}

type ObjectiveResponse struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	OwnerID    string              `json:"owner_id"`
	Owner      string              `json:"owner"`
	CycleID    string              `json:"cycle_id"`
	Cycle      string              `json:"cycle"`
	Notes      string              `json:"notes,omitempty"`
	Progress   int                 `json:"progress"`
	KeyResults []KeyResultResponse `json:"key_results"`
}

type KeyResultResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	StartValue   float64 `json:"start_value"`
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	Progress     int     `json:"progress"`
}

type CreateObjectiveParams struct {
	OwnerID    string            `json:"owner_id,omitempty" jsonschema:"Team ID from get_project, or company (the default)"`
	Title      string            `json:"title" jsonschema:"Objective title"`
	Notes      string            `json:"notes,omitempty" jsonschema:"Free-form notes"`
	KeyResults []KeyResultParams `json:"key_results,omitempty" jsonschema:"Measurable key results for the objective"`
}

type KeyResultParams struct {
	Title        string   `json:"title" jsonschema:"Key result title"`
	StartValue   *float64 `json:"start_value,omitempty" jsonschema:"Baseline value, default 0"`
	TargetValue  *float64 `json:"target_value,omitempty" jsonschema:"Goal value, default 100"`
	CurrentValue *float64 `json:"current_value,omitempty" jsonschema:"Current value, defaults to start_value"`
}

type UpdateKeyResultParams struct {
	ObjectiveID  string   `json:"objective_id" jsonschema:"Objective ID"`
	KeyResultID  string   `json:"key_result_id" jsonschema:"Key result ID"`
	Title        *string  `json:"title,omitempty" jsonschema:"New title, unchanged when omitted"`
	StartValue   *float64 `json:"start_value,omitempty" jsonschema:"New baseline, unchanged when omitted"`
	TargetValue  *float64 `json:"target_value,omitempty" jsonschema:"New goal, unchanged when omitted"`
	CurrentValue *float64 `json:"current_value,omitempty" jsonschema:"New current value, unchanged when omitted"`
}

type GetRecentActivityParams struct {
	ActivityType string `json:"activity_type,omitempty" jsonschema:"Only entries of this type, e.g. objective_created"`
	Limit        int    `json:"limit,omitempty" jsonschema:"Maximum number of entries, default 50"`
	Offset       int    `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type ActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

type ActivityEntryResponse struct {
	ID        int64  `json:"id"`
	ProjectID string `json:"project_id,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}
