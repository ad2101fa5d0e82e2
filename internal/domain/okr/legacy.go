package okr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// legacyDocument is the original single-project layout, with the project's
// fields at the top level and no projects array.
type legacyDocument struct {
	CompanyName string      `json:"companyName"`
	Foundation  Foundation  `json:"foundation"`
	Teams       []Team      `json:"teams"`
	Cycles      []Cycle     `json:"cycles"`
	Objectives  []Objective `json:"objectives"`
}

const legacyProjectName = "My Company"

// loadState reads the state slot and folds in a legacy document from either
// slot. The upgraded document is saved and the legacy slot removed, so a
// second load finds nothing to upgrade.
func (s *Store) loadState(ctx context.Context) (State, error) {
	st := State{Projects: []Project{}}
	dirty := false

	data, err := s.repo.Get(ctx, StateSlot)
	switch {
	case err == nil:
		decoded, legacy, err := decodeDocument(data)
		if err != nil {
			return State{}, fmt.Errorf("decoding %s: %w", StateSlot, err)
		}
		if legacy != nil {
			adoptLegacy(&st, legacy.toProject(s))
			dirty = true
		} else {
			st = decoded
		}
	case isNotFound(err):
	default:
		return State{}, fmt.Errorf("loading state: %w", err)
	}

	clearLegacy := false
	data, err = s.repo.Get(ctx, LegacySlot)
	switch {
	case err == nil:
		decoded, legacy, err := decodeDocument(data)
		if err != nil {
			return State{}, fmt.Errorf("decoding %s: %w", LegacySlot, err)
		}
		if legacy != nil {
			adoptLegacy(&st, legacy.toProject(s))
		} else {
			st.Projects = append(st.Projects, decoded.Projects...)
			if st.CurrentProjectID == nil {
				st.CurrentProjectID = decoded.CurrentProjectID
			}
		}
		dirty = true
		clearLegacy = true
	case isNotFound(err):
	default:
		return State{}, fmt.Errorf("loading legacy state: %w", err)
	}

	if st.Projects == nil {
		st.Projects = []Project{}
	}
	if st.CurrentProjectID != nil && findProject(&st, *st.CurrentProjectID) < 0 {
		st.CurrentProjectID = nil
	}

	if dirty {
		if err := s.save(ctx, st); err != nil {
			return State{}, err
		}
		s.logger.Info("upgraded legacy okr document", "projects", len(st.Projects))
	}
	if clearLegacy {
		if err := s.repo.Delete(ctx, LegacySlot); err != nil && !isNotFound(err) {
			return State{}, fmt.Errorf("clearing legacy state: %w", err)
		}
	}
	return st, nil
}

// decodeDocument parses a slot. It returns a non-nil legacy document when
// the data has no projects array.
func decodeDocument(data []byte) (State, *legacyDocument, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return State{}, nil, err
	}
	if probe == nil {
		return State{Projects: []Project{}}, nil, nil
	}
	if _, ok := probe["projects"]; ok {
		var st State
		if err := json.Unmarshal(data, &st); err != nil {
			return State{}, nil, err
		}
		return st, nil, nil
	}
	var legacy legacyDocument
	if err := json.Unmarshal(data, &legacy); err != nil {
		return State{}, nil, err
	}
	return State{}, &legacy, nil
}

func adoptLegacy(st *State, p Project) {
	st.Projects = append(st.Projects, p)
	st.CurrentProjectID = &p.ID
}

func (d *legacyDocument) toProject(s *Store) Project {
	name := strings.TrimSpace(d.CompanyName)
	if name == "" {
		name = legacyProjectName
	}
	p := Project{
		ID:         newID("proj"),
		Name:       name,
		Foundation: d.Foundation,
		Teams:      append([]Team{}, d.Teams...),
		Cycles:     append([]Cycle{}, d.Cycles...),
		Objectives: make([]Objective, 0, len(d.Objectives)),
		CreatedAt:  s.now(),
	}
	if len(p.Cycles) == 0 {
		p.Cycles = append(p.Cycles, Cycle{
			ID:        newID("cycle"),
			Name:      initialCycleName,
			StartDate: s.now().Format(dateLayout),
			Status:    CycleActive,
		})
	}
	active := false
	for i := range p.Cycles {
		if p.Cycles[i].Status == CycleActive && !active {
			active = true
			continue
		}
		p.Cycles[i].Status = CycleArchived
	}
	for _, obj := range d.Objectives {
		obj = obj.Clone()
		if obj.KeyResults == nil {
			obj.KeyResults = []KeyResult{}
		}
		obj.Recalculate()
		p.Objectives = append(p.Objectives, obj)
	}
	return p
}
