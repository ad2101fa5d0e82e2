package sheet

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rpggio/okrboard/internal/domain/okr"
)

// Export flattens the project's objectives into rows: one per key result,
// or a single NoKeyResults row for an objective without key results.
func Export(p okr.Project) []Row {
	cycleNames := make(map[string]string, len(p.Cycles))
	for _, c := range p.Cycles {
		cycleNames[c.ID] = c.Name
	}

	var rows []Row
	for _, obj := range p.Objectives {
		base := Row{
			Cycle:          cycleNames[obj.CycleID],
			Owner:          p.OwnerName(obj.OwnerID),
			ObjectiveTitle: obj.Title,
		}
		if len(obj.KeyResults) == 0 {
			row := base
			row.KeyResultTitle = NoKeyResults
			rows = append(rows, row)
			continue
		}
		for _, kr := range obj.KeyResults {
			row := base
			row.KeyResultTitle = kr.Title
			row.StartValue = formatValue(kr.StartValue)
			row.TargetValue = formatValue(kr.TargetValue)
			row.CurrentValue = formatValue(kr.CurrentValue)
			row.Progress = strconv.Itoa(kr.Progress)
			rows = append(rows, row)
		}
	}
	return rows
}

type objectiveKey struct {
	title, owner, cycle string
}

// Reconcile builds the replacement for p from rows. p is not modified: the
// objectives are rebuilt from scratch, owners resolve by exact team name
// (falling back to the company), and unknown cycle names become new
// Archived cycles with no dates.
func Reconcile(p okr.Project, rows []Row) (okr.Project, error) {
	next := p.Clone()
	next.Objectives = []okr.Objective{}

	teamIDs := make(map[string]string, len(next.Teams))
	for _, team := range next.Teams {
		if _, ok := teamIDs[team.Name]; !ok {
			teamIDs[team.Name] = team.ID
		}
	}
	cycleIDs := make(map[string]string, len(next.Cycles))
	for _, c := range next.Cycles {
		if _, ok := cycleIDs[c.Name]; !ok {
			cycleIDs[c.Name] = c.ID
		}
	}

	byKey := make(map[objectiveKey]int)
	for i, row := range rows {
		if row.ObjectiveTitle == "" {
			return okr.Project{}, fmt.Errorf("%w: row %d has no %s", ErrMalformedRow, i+1, ColObjectiveTitle)
		}
		key := objectiveKey{row.ObjectiveTitle, row.Owner, row.Cycle}
		idx, seen := byKey[key]
		if !seen {
			ownerID, ok := teamIDs[row.Owner]
			if !ok {
				ownerID = okr.CompanyOwnerID
			}
			cycleID, ok := cycleIDs[row.Cycle]
			if !ok {
				cycle := okr.Cycle{
					ID:     "cycle-" + uuid.NewString(),
					Name:   row.Cycle,
					Status: okr.CycleArchived,
				}
				next.Cycles = append(next.Cycles, cycle)
				cycleIDs[row.Cycle] = cycle.ID
				cycleID = cycle.ID
			}
			next.Objectives = append(next.Objectives, okr.Objective{
				ID:         "obj-" + uuid.NewString(),
				CycleID:    cycleID,
				OwnerID:    ownerID,
				Title:      row.ObjectiveTitle,
				KeyResults: []okr.KeyResult{},
			})
			idx = len(next.Objectives) - 1
			byKey[key] = idx
		}

		if row.KeyResultTitle == "" || row.KeyResultTitle == NoKeyResults {
			continue
		}
		obj := &next.Objectives[idx]
		obj.KeyResults = append(obj.KeyResults, okr.KeyResult{
			ID:           "kr-" + uuid.NewString(),
			Title:        row.KeyResultTitle,
			StartValue:   okr.ParseValue(row.StartValue, okr.DefaultStartValue),
			TargetValue:  okr.ParseValue(row.TargetValue, okr.DefaultTargetValue),
			CurrentValue: okr.ParseValue(row.CurrentValue, okr.DefaultCurrentValue),
		})
	}

	for i := range next.Objectives {
		next.Objectives[i].Recalculate()
	}
	return next, nil
}

// Replacer swaps the current project for a rebuilt one. *okr.Store implements it.
type Replacer interface {
	ReplaceCurrentProject(ctx context.Context, summary string, build func(okr.Project) (okr.Project, error)) (*okr.Project, error)
}

// Import replaces every objective of the current project with those described
// by rows. The replacement is built aside and swapped in only on success.
func Import(ctx context.Context, store Replacer, rows []Row) (*okr.Project, error) {
	summary := fmt.Sprintf("imported %d rows", len(rows))
	return store.ReplaceCurrentProject(ctx, summary, func(current okr.Project) (okr.Project, error) {
		return Reconcile(current, rows)
	})
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
