package okr

import (
	"math"
	"strconv"
	"strings"
)

// Coercion defaults for key-result values that are missing or not numeric.
const (
	DefaultStartValue   = 0
	DefaultTargetValue  = 100
	DefaultCurrentValue = 0
)

// KeyResultProgress returns clamp(0, 100, round((current-start)/(target-start)*100)).
// A key result whose target equals its start gets full credit.
func KeyResultProgress(start, target, current float64) int {
	if target == start {
		return 100
	}
	pct := (current - start) / (target - start) * 100
	pct = math.Max(0, math.Min(100, pct))
	return int(math.Round(pct))
}

// ObjectiveProgress returns the rounded mean of the key results' progress, or 0
// when there are none.
func ObjectiveProgress(krs []KeyResult) int {
	if len(krs) == 0 {
		return 0
	}
	total := 0
	for _, kr := range krs {
		total += kr.Progress
	}
	return int(math.Round(float64(total) / float64(len(krs))))
}

// Recalculate refreshes the progress of every key result and then the objective.
func (o *Objective) Recalculate() {
	for i := range o.KeyResults {
		kr := &o.KeyResults[i]
		kr.Progress = KeyResultProgress(kr.StartValue, kr.TargetValue, kr.CurrentValue)
	}
	o.Progress = ObjectiveProgress(o.KeyResults)
}

// ParseValue converts spreadsheet or form text to a number, returning def when
// the text is blank or not a finite number.
func ParseValue(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return coerce(v, def)
}

func coerce(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
