package okr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/rpggio/okrboard/internal/repository"
)

// Storage slot names.
const (
	StateSlot  = "okrboard.state"
	LegacySlot = "okrAppData"
)

const (
	initialCycleName = "Initial Cycle"
	dateLayout       = "2006-01-02"
)

// Store owns the OKR document. Every mutation is written through to the
// repository before it returns; reads return copies.
type Store struct {
	mu       sync.Mutex
	repo     Repository
	activity ActivityLogger
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	state    State
}

// NewStore creates a store. activityLog, notifier and logger may be nil.
func NewStore(repo Repository, activityLog ActivityLogger, notifier Notifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		repo:     repo,
		activity: activityLog,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		state:    State{Projects: []Project{}},
	}
}

// change describes a committed mutation for the activity log.
type change struct {
	kind      activity.ActivityType
	projectID string
	summary   string
}

// Load reads the persisted document, upgrading a legacy single-project
// document if one is present.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadState(ctx)
	if err != nil {
		return err
	}
	s.state = st
	return nil
}

// Snapshot returns a deep copy of the whole document.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Projects lists all projects.
func (s *Store) Projects() []ProjectSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ProjectSummary, 0, len(s.state.Projects))
	for _, p := range s.state.Projects {
		summary := ProjectSummary{
			ID:             p.ID,
			Name:           p.Name,
			ObjectiveCount: len(p.Objectives),
			Current:        s.state.CurrentProjectID != nil && *s.state.CurrentProjectID == p.ID,
		}
		if cycle, ok := p.ActiveCycle(); ok {
			summary.ActiveCycle = cycle.Name
		}
		out = append(out, summary)
	}
	return out
}

// CurrentProject returns a copy of the selected project.
func (s *Store) CurrentProject() (*Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := currentProject(&s.state)
	if !ok {
		return nil, false
	}
	clone := p.Clone()
	return &clone, true
}

// OwnerName resolves an owner id within the current project.
func (s *Store) OwnerName(ownerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := currentProject(&s.state)
	if !ok {
		return UnknownOwner
	}
	return p.OwnerName(ownerID)
}

// CreateProjectRequest defines project creation inputs.
type CreateProjectRequest struct {
	Name      string
	Mission   string
	Vision    string
	TeamNames []string
}

// CreateProject creates a project with one Active "Initial Cycle" and selects it.
func (s *Store) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	proj := Project{
		ID:   newID("proj"),
		Name: name,
		Foundation: Foundation{
			Mission: req.Mission,
			Vision:  req.Vision,
		},
		Teams: []Team{},
		Cycles: []Cycle{{
			ID:        newID("cycle"),
			Name:      initialCycleName,
			StartDate: now.Format(dateLayout),
			Status:    CycleActive,
		}},
		Objectives: []Objective{},
		CreatedAt:  now,
	}
	for _, teamName := range req.TeamNames {
		teamName = strings.TrimSpace(teamName)
		if teamName == "" {
			continue
		}
		proj.Teams = append(proj.Teams, Team{ID: newID("team"), Name: teamName})
	}

	err := s.commit(ctx, func(st *State) (change, error) {
		st.Projects = append(st.Projects, proj)
		st.CurrentProjectID = &proj.ID
		return change{activity.TypeProjectCreated, proj.ID, fmt.Sprintf("created project %q", proj.Name)}, nil
	})
	if err != nil {
		return nil, err
	}
	out := proj.Clone()
	return &out, nil
}

// SelectProject makes id the current project.
func (s *Store) SelectProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, func(st *State) (change, error) {
		if findProject(st, id) < 0 {
			return change{}, ErrProjectNotFound
		}
		st.CurrentProjectID = &id
		return change{}, nil
	})
}

// DeleteProject removes a project and everything it owns. Deleting the
// current project leaves no project selected.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, func(st *State) (change, error) {
		idx := findProject(st, id)
		if idx < 0 {
			return change{}, ErrProjectNotFound
		}
		name := st.Projects[idx].Name
		st.Projects = append(st.Projects[:idx], st.Projects[idx+1:]...)
		if st.CurrentProjectID != nil && *st.CurrentProjectID == id {
			st.CurrentProjectID = nil
		}
		return change{activity.TypeProjectDeleted, id, fmt.Sprintf("deleted project %q", name)}, nil
	})
}

// AddCycle appends an Archived cycle to the current project.
func (s *Store) AddCycle(ctx context.Context, name, startDate, endDate string) (*Cycle, error) {
	name = strings.TrimSpace(name)
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	if name == "" || !validDate(startDate) || !validDate(endDate) {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cycle := Cycle{
		ID:        newID("cycle"),
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    CycleArchived,
	}
	err := s.commitProject(ctx, func(p *Project) (change, error) {
		p.Cycles = append(p.Cycles, cycle)
		return change{activity.TypeCycleAdded, p.ID, fmt.Sprintf("added cycle %q", cycle.Name)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// SetActiveCycle makes id the only Active cycle; every other cycle is Archived.
func (s *Store) SetActiveCycle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitProject(ctx, func(p *Project) (change, error) {
		target, ok := p.Cycle(id)
		if !ok {
			return change{}, ErrCycleNotFound
		}
		name := target.Name
		for i := range p.Cycles {
			if p.Cycles[i].ID == id {
				p.Cycles[i].Status = CycleActive
			} else {
				p.Cycles[i].Status = CycleArchived
			}
		}
		return change{activity.TypeCycleActivated, p.ID, fmt.Sprintf("activated cycle %q", name)}, nil
	})
}

// DeleteCycle removes an Archived cycle and every objective bound to it. The
// last cycle and the Active cycle cannot be deleted.
func (s *Store) DeleteCycle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitProject(ctx, func(p *Project) (change, error) {
		target, ok := p.Cycle(id)
		if !ok {
			return change{}, ErrCycleNotFound
		}
		if len(p.Cycles) <= 1 {
			return change{}, ErrLastCycle
		}
		if target.Status == CycleActive {
			return change{}, ErrActiveCycle
		}
		name := target.Name

		cycles := p.Cycles[:0]
		for _, c := range p.Cycles {
			if c.ID != id {
				cycles = append(cycles, c)
			}
		}
		p.Cycles = cycles

		objectives := p.Objectives[:0]
		removed := 0
		for _, obj := range p.Objectives {
			if obj.CycleID == id {
				removed++
				continue
			}
			objectives = append(objectives, obj)
		}
		p.Objectives = objectives
		return change{activity.TypeCycleDeleted, p.ID, fmt.Sprintf("deleted cycle %q and %d objectives", name, removed)}, nil
	})
}

// UpdateFoundation overwrites the current project's mission and vision.
func (s *Store) UpdateFoundation(ctx context.Context, mission, vision string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitProject(ctx, func(p *Project) (change, error) {
		p.Foundation = Foundation{Mission: mission, Vision: vision}
		return change{activity.TypeFoundationUpdated, p.ID, "updated foundation"}, nil
	})
}

// ReplaceCurrentProject swaps the current project for the one returned by
// build. build receives a private copy; nothing is persisted unless it
// succeeds and the result passes validation.
func (s *Store) ReplaceCurrentProject(ctx context.Context, summary string, build func(current Project) (Project, error)) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var replaced Project
	err := s.commitProject(ctx, func(p *Project) (change, error) {
		next, err := build(p.Clone())
		if err != nil {
			return change{}, err
		}
		if err := validateReplacement(*p, &next); err != nil {
			return change{}, err
		}
		*p = next
		replaced = next.Clone()
		return change{activity.TypeObjectivesImported, p.ID, summary}, nil
	})
	if err != nil {
		return nil, err
	}
	return &replaced, nil
}

func validateReplacement(prev Project, next *Project) error {
	if next.ID != prev.ID {
		return fmt.Errorf("%w: project id changed", ErrInvalidProject)
	}
	if len(next.Cycles) == 0 {
		return fmt.Errorf("%w: no cycles", ErrInvalidProject)
	}
	active := 0
	for _, c := range next.Cycles {
		if c.Status == CycleActive {
			active++
		}
	}
	if active > 1 {
		return fmt.Errorf("%w: %d active cycles", ErrInvalidProject, active)
	}
	for i := range next.Objectives {
		obj := &next.Objectives[i]
		if _, ok := next.Cycle(obj.CycleID); !ok {
			return fmt.Errorf("%w: objective %q references unknown cycle", ErrInvalidProject, obj.Title)
		}
		obj.Recalculate()
	}
	return nil
}

// commit applies fn to a copy of the state, persists the copy and swaps it
// in. On any error the in-memory state is left untouched. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, fn func(st *State) (change, error)) error {
	next := s.state.Clone()
	ch, err := fn(&next)
	if err != nil {
		return err
	}
	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.state = next

	if ch.kind != "" {
		s.recordActivity(ctx, ch)
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx)
	}
	return nil
}

// commitProject is commit scoped to the current project.
func (s *Store) commitProject(ctx context.Context, fn func(p *Project) (change, error)) error {
	return s.commit(ctx, func(st *State) (change, error) {
		p, ok := currentProject(st)
		if !ok {
			return change{}, ErrNoProject
		}
		return fn(p)
	})
}

func (s *Store) save(ctx context.Context, st State) error {
	if st.Projects == nil {
		st.Projects = []Project{}
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := s.repo.Put(ctx, StateSlot, data); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

func (s *Store) recordActivity(ctx context.Context, ch change) {
	s.logger.Debug("okr mutation", "type", ch.kind, "project_id", ch.projectID, "summary", ch.summary)
	// Selection changes are not logged.
	if s.activity == nil || ch.kind == "" {
		return
	}
	err := s.activity.LogActivity(ctx, &activity.ActivityEntry{
		ProjectID:    ch.projectID,
		ActivityType: ch.kind,
		Summary:      ch.summary,
	})
	if err != nil {
		s.logger.Warn("failed to log activity", "type", ch.kind, "error", err)
	}
}

func currentProject(st *State) (*Project, bool) {
	if st.CurrentProjectID == nil {
		return nil, false
	}
	idx := findProject(st, *st.CurrentProjectID)
	if idx < 0 {
		return nil, false
	}
	return &st.Projects[idx], true
}

func findProject(st *State, id string) int {
	for i := range st.Projects {
		if st.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
