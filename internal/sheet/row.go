package sheet

import (
	"errors"
	"fmt"
	"strings"
)

// Column names, exact and case-sensitive.
const (
	ColCycle          = "Cycle"
	ColOwner          = "Owner"
	ColObjectiveTitle = "Objective Title"
	ColKeyResultTitle = "Key Result Title"
	ColStartValue     = "Start Value"
	ColTargetValue    = "Target Value"
	ColCurrentValue   = "Current Value"
	ColProgress       = "Progress (%)"
)

// NoKeyResults marks the row exported for an objective without key results.
const NoKeyResults = "(No key results)"

// Header is the exported column order.
var Header = []string{
	ColCycle,
	ColOwner,
	ColObjectiveTitle,
	ColKeyResultTitle,
	ColStartValue,
	ColTargetValue,
	ColCurrentValue,
	ColProgress,
}

var requiredColumns = []string{ColObjectiveTitle, ColOwner, ColCycle}

var (
	// ErrMissingColumn indicates the table lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedRow indicates a row that cannot be reconciled.
	ErrMalformedRow = errors.New("malformed row")
	// ErrEmptyTable indicates there is no header row.
	ErrEmptyTable = errors.New("table has no header row")
)

// Row is one line of the table. Values are kept as text; numeric columns are
// coerced when the row is reconciled.
type Row struct {
	Cycle          string
	Owner          string
	ObjectiveTitle string
	KeyResultTitle string
	StartValue     string
	TargetValue    string
	CurrentValue   string
	Progress       string
}

func (r Row) cells() []string {
	return []string{
		r.Cycle,
		r.Owner,
		r.ObjectiveTitle,
		r.KeyResultTitle,
		r.StartValue,
		r.TargetValue,
		r.CurrentValue,
		r.Progress,
	}
}

// RowsToTable renders rows as a header plus one record per row.
func RowsToTable(rows []Row) [][]string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, append([]string(nil), Header...))
	for _, r := range rows {
		table = append(table, r.cells())
	}
	return table
}

// TableToRows reads a header plus records. Columns are matched by exact
// name in any order; only Objective Title, Owner and Cycle are required.
// Fully blank records are skipped.
func TableToRows(table [][]string) ([]Row, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}

	index := make(map[string]int, len(table[0]))
	for i, name := range table[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	cell := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]Row, 0, len(table)-1)
	for n, record := range table[1:] {
		if blank(record) {
			continue
		}
		row := Row{
			Cycle:          cell(record, ColCycle),
			Owner:          cell(record, ColOwner),
			ObjectiveTitle: cell(record, ColObjectiveTitle),
			KeyResultTitle: cell(record, ColKeyResultTitle),
			StartValue:     cell(record, ColStartValue),
			TargetValue:    cell(record, ColTargetValue),
			CurrentValue:   cell(record, ColCurrentValue),
			Progress:       cell(record, ColProgress),
		}
		if row.ObjectiveTitle == "" {
			return nil, fmt.Errorf("%w: line %d has no %s", ErrMalformedRow, n+2, ColObjectiveTitle)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
