package okr

import "time"

// CompanyOwnerID is the owner id of company-wide objectives. It never names a Team.
const CompanyOwnerID = "company"

// UnknownOwner is returned by OwnerName when an owner id resolves to nothing.
const UnknownOwner = "Unknown"

// CycleStatus is the lifecycle state of a planning cycle.
type CycleStatus string

const (
	CycleActive   CycleStatus = "Active"
	CycleArchived CycleStatus = "Archived"
)

// State is the whole persisted document.
type State struct {
	CurrentProjectID *string   `json:"currentProjectId"`
	Projects         []Project `json:"projects"`
}

// Project is the root of an OKR hierarchy. It owns its teams, cycles and objectives.
type Project struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Foundation Foundation  `json:"foundation"`
	Teams      []Team      `json:"teams"`
	Cycles     []Cycle     `json:"cycles"`
	Objectives []Objective `json:"objectives"`
	CreatedAt  time.Time   `json:"createdAt,omitempty"`
}

// Foundation holds the project's mission and vision statements.
type Foundation struct {
	Mission string `json:"mission"`
	Vision  string `json:"vision"`
}

// Team is a possible objective owner.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Cycle is a planning period. Dates are YYYY-MM-DD; an empty EndDate is open-ended.
type Cycle struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
	Status    CycleStatus `json:"status"`
}

// Objective is a qualitative goal bound to one cycle and one owner.
type Objective struct {
	ID         string      `json:"id"`
	CycleID    string      `json:"cycleId"`
	OwnerID    string      `json:"ownerId"`
	Title      string      `json:"title"`
	Notes      string      `json:"notes"`
	Progress   int         `json:"progress"`
	Grade      *float64    `json:"grade"`
	KeyResults []KeyResult `json:"keyResults"`
}

// KeyResult is a measurable outcome contributing to its objective's progress.
type KeyResult struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	StartValue   float64 `json:"startValue"`
	TargetValue  float64 `json:"targetValue"`
	CurrentValue float64 `json:"currentValue"`
	Progress     int     `json:"progress"`
}

// ProjectSummary is a lightweight representation for listing.
type ProjectSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ActiveCycle    string `json:"activeCycle,omitempty"`
	ObjectiveCount int    `json:"objectiveCount"`
	Current        bool   `json:"current"`
}

// ActiveCycle returns the project's Active cycle, if any.
func (p *Project) ActiveCycle() (*Cycle, bool) {
	for i := range p.Cycles {
		if p.Cycles[i].Status == CycleActive {
			return &p.Cycles[i], true
		}
	}
	return nil, false
}

// Cycle looks up a cycle by id.
func (p *Project) Cycle(id string) (*Cycle, bool) {
	for i := range p.Cycles {
		if p.Cycles[i].ID == id {
			return &p.Cycles[i], true
		}
	}
	return nil, false
}

// Objective looks up an objective by id.
func (p *Project) Objective(id string) (*Objective, bool) {
	for i := range p.Objectives {
		if p.Objectives[i].ID == id {
			return &p.Objectives[i], true
		}
	}
	return nil, false
}

// KeyResult looks up a key result by id.
func (o *Objective) KeyResult(id string) (*KeyResult, bool) {
	for i := range o.KeyResults {
		if o.KeyResults[i].ID == id {
			return &o.KeyResults[i], true
		}
	}
	return nil, false
}

// OwnerName resolves an owner id to a display name: the project name for the
// company owner, the team name for a team, UnknownOwner otherwise.
func (p *Project) OwnerName(ownerID string) string {
	if ownerID == CompanyOwnerID {
		return p.Name
	}
	for _, team := range p.Teams {
		if team.ID == ownerID {
			return team.Name
		}
	}
	return UnknownOwner
}

// Clone returns a deep copy of the project. Slices are never nil in the
// copy, so they persist as JSON arrays.
func (p Project) Clone() Project {
	out := p
	out.Teams = append(make([]Team, 0, len(p.Teams)), p.Teams...)
	out.Cycles = append(make([]Cycle, 0, len(p.Cycles)), p.Cycles...)
	out.Objectives = make([]Objective, len(p.Objectives))
	for i, obj := range p.Objectives {
		out.Objectives[i] = obj.Clone()
	}
	return out
}

// Clone returns a deep copy of the objective.
func (o Objective) Clone() Objective {
	out := o
	if o.Grade != nil {
		grade := *o.Grade
		out.Grade = &grade
	}
	out.KeyResults = append(make([]KeyResult, 0, len(o.KeyResults)), o.KeyResults...)
	return out
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{}
	if s.CurrentProjectID != nil {
		id := *s.CurrentProjectID
		out.CurrentProjectID = &id
	}
	out.Projects = make([]Project, len(s.Projects))
	for i, p := range s.Projects {
		out.Projects[i] = p.Clone()
	}
	return out
}
