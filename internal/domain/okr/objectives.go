package okr

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/okrboard/internal/domain/activity"
)

// ObjectiveInput defines the editable fields of an objective.
type ObjectiveInput struct {
	Title   string
	OwnerID string
	Notes   string
}

// KeyResultInput defines the editable fields of a key result. Title must not
// be blank. Non-finite
// values are coerced to the defaults (start 0, target 100, current 0).
type KeyResultInput struct {
	Title        string
	StartValue   float64
	TargetValue  float64
	CurrentValue float64
}

// AddObjective creates an objective in the Active cycle of the current project.
func (s *Store) AddObjective(ctx context.Context, in ObjectiveInput) (*Objective, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created Objective
	err := s.commitProject(ctx, func(p *Project) (change, error) {
		obj, err := newObjective(p, in)
		if err != nil {
			return change{}, err
		}
		p.Objectives = append(p.Objectives, obj)
		created = obj.Clone()
		return change{activity.TypeObjectiveCreated, p.ID, fmt.Sprintf("created objective %q", obj.Title)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateObjective changes title, owner and notes. Progress and key results are untouched.
func (s *Store) UpdateObjective(ctx context.Context, id string, in ObjectiveInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitProject(ctx, func(p *Project) (change, error) {
		obj, ok := p.Objective(id)
		if !ok {
			return change{}, ErrObjectiveNotFound
		}
		obj.Title = title
		obj.OwnerID = ownerOrCompany(in.OwnerID)
		obj.Notes = in.Notes
		return change{activity.TypeObjectiveUpdated, p.ID, fmt.Sprintf("updated objective %q", obj.Title)}, nil
	})
}

// DeleteObjective removes an objective together with its key results.
func (s *Store) DeleteObjective(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitProject(ctx, func(p *Project) (change, error) {
		for i, obj := range p.Objectives {
			if obj.ID == id {
				p.Objectives = append(p.Objectives[:i], p.Objectives[i+1:]...)
				return change{activity.TypeObjectiveDeleted, p.ID, fmt.Sprintf("deleted objective %q", obj.Title)}, nil
			}
		}
		return change{}, ErrObjectiveNotFound
	})
}

// AddKeyResult appends a key result and recomputes the objective's progress.
func (s *Store) AddKeyResult(ctx context.Context, objectiveID string, in KeyResultInput) (*KeyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created KeyResult
	err := s.commitProject(ctx, func(p *Project) (change, error) {
		obj, ok := p.Objective(objectiveID)
		if !ok {
			return change{}, ErrObjectiveNotFound
		}
		kr, err := newKeyResult(in)
		if err != nil {
			return change{}, err
		}
		obj.KeyResults = append(obj.KeyResults, kr)
		obj.Recalculate()
		created = obj.KeyResults[len(obj.KeyResults)-1]
		return change{activity.TypeKeyResultAdded, p.ID, fmt.Sprintf("added key result %q to %q", kr.Title, obj.Title)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateKeyResult replaces a key result's fields and recomputes the objective's progress.
func (s *Store) UpdateKeyResult(ctx context.Context, objectiveID, krID string, in KeyResultInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitProject(ctx, func(p *Project) (change, error) {
		obj, ok := p.Objective(objectiveID)
		if !ok {
			return change{}, ErrObjectiveNotFound
		}
		kr, ok := obj.KeyResult(krID)
		if !ok {
			return change{}, ErrKeyResultNotFound
		}
		updated, err := newKeyResult(in)
		if err != nil {
			return change{}, err
		}
		updated.ID = kr.ID
		*kr = updated
		obj.Recalculate()
		return change{activity.TypeKeyResultUpdated, p.ID, fmt.Sprintf("updated key result %q on %q", updated.Title, obj.Title)}, nil
	})
}

// DeleteKeyResult removes a key result and recomputes the objective's progress.
func (s *Store) DeleteKeyResult(ctx context.Context, objectiveID, krID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitProject(ctx, func(p *Project) (change, error) {
		obj, ok := p.Objective(objectiveID)
		if !ok {
			return change{}, ErrObjectiveNotFound
		}
		for i, kr := range obj.KeyResults {
			if kr.ID == krID {
				obj.KeyResults = append(obj.KeyResults[:i], obj.KeyResults[i+1:]...)
				obj.Recalculate()
				return change{activity.TypeKeyResultDeleted, p.ID, fmt.Sprintf("deleted key result %q from %q", kr.Title, obj.Title)}, nil
			}
		}
		return change{}, ErrKeyResultNotFound
	})
}

// ObjectiveDraft is an objective with its key results, created in one call by
// assistants and other automations.
type ObjectiveDraft struct {
	OwnerID    string
	Title      string
	Notes      string
	KeyResults []KeyResultDraft
}

// KeyResultDraft leaves values optional: start defaults to 0, target to 100
// and current to the start value.
type KeyResultDraft struct {
	Title        string
	StartValue   *float64
	TargetValue  *float64
	CurrentValue *float64
}

// CreateObjectiveWithKeyResults creates an objective and all of its key
// results as a single persisted mutation and announces one change.
func (s *Store) CreateObjectiveWithKeyResults(ctx context.Context, draft ObjectiveDraft) (*Objective, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created Objective
	err := s.commitProject(ctx, func(p *Project) (change, error) {
		obj, err := newObjective(p, ObjectiveInput{
			Title:   draft.Title,
			OwnerID: draft.OwnerID,
			Notes:   draft.Notes,
		})
		if err != nil {
			return change{}, err
		}
		for _, d := range draft.KeyResults {
			start := valueOr(d.StartValue, DefaultStartValue)
			kr, err := newKeyResult(KeyResultInput{
				Title:        d.Title,
				StartValue:   start,
				TargetValue:  valueOr(d.TargetValue, DefaultTargetValue),
				CurrentValue: valueOr(d.CurrentValue, start),
			})
			if err != nil {
				return change{}, err
			}
			obj.KeyResults = append(obj.KeyResults, kr)
		}
		obj.Recalculate()
		p.Objectives = append(p.Objectives, obj)
		created = obj.Clone()
		return change{activity.TypeObjectiveCreated, p.ID, fmt.Sprintf("created objective %q with %d key results", obj.Title, len(obj.KeyResults))}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func newObjective(p *Project, in ObjectiveInput) (Objective, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Objective{}, ErrInvalidInput
	}
	cycle, ok := p.ActiveCycle()
	if !ok {
		return Objective{}, ErrNoActiveCycle
	}
	return Objective{
		ID:         newID("obj"),
		CycleID:    cycle.ID,
		OwnerID:    ownerOrCompany(in.OwnerID),
		Title:      title,
		Notes:      in.Notes,
		KeyResults: []KeyResult{},
	}, nil
}

// newKeyResult rejects a blank title: an untitled key result would not
// survive a spreadsheet export and import.
func newKeyResult(in KeyResultInput) (KeyResult, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return KeyResult{}, ErrInvalidInput
	}
	kr := KeyResult{
		ID:           newID("kr"),
		Title:        title,
		StartValue:   coerce(in.StartValue, DefaultStartValue),
		TargetValue:  coerce(in.TargetValue, DefaultTargetValue),
		CurrentValue: coerce(in.CurrentValue, DefaultCurrentValue),
	}
	kr.Progress = KeyResultProgress(kr.StartValue, kr.TargetValue, kr.CurrentValue)
	return kr, nil
}

func ownerOrCompany(ownerID string) string {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return CompanyOwnerID
	}
	return ownerID
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return coerce(*v, def)
}
