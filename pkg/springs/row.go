package springs

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Run is Len consecutive springs sharing one condition.
type Run struct {
	Condition Condition
	Len       int
}

// Row is one condition record: the springs as maximal runs plus the lengths
// of the damaged groups they must form.
//
// The zero Row is empty and has no groups.
type Row struct {
	runs    []Run
	targets []int
}

// NewRow builds a row from runs and damaged group lengths.
//
// Neighbouring runs with the same condition are merged. Both slices are
// copied; the caller may reuse them.
func NewRow(runs []Run, targets []int) (Row, error) {
	for i, run := range runs {
		if run.Len < 1 || !run.Condition.valid() {
			return Row{}, fmt.Errorf("%w: run %d is %s×%d", ErrInvalidRun, i, run.Condition, run.Len)
		}
	}

	for i, target := range targets {
		if target < 1 {
			return Row{}, fmt.Errorf("%w: group %d is %d", ErrInvalidTarget, i, target)
		}
	}

	return Row{runs: MergeAdjacent(runs), targets: slices.Clone(targets)}, nil
}

// MergeAdjacent returns runs with every pair of neighbouring runs of the same
// condition folded into one, and zero-length runs removed. The input is not
// modified. Applying it twice gives the same result as applying it once.
func MergeAdjacent(runs []Run) []Run {
	merged := make([]Run, 0, len(runs))

	for _, run := range runs {
		if run.Len <= 0 {
			continue
		}

		if last := len(merged) - 1; last >= 0 && merged[last].Condition == run.Condition {
			merged[last].Len += run.Len

			continue
		}

		merged = append(merged, run)
	}

	return merged
}

// Runs returns a copy of the row's runs.
func (r Row) Runs() []Run {
	return slices.Clone(r.runs)
}

// Targets returns a copy of the damaged group lengths.
func (r Row) Targets() []int {
	return slices.Clone(r.targets)
}

// TotalLength returns the number of springs in the row.
func (r Row) TotalLength() int {
	total := 0
	for _, run := range r.runs {
		total += run.Len
	}

	return total
}

// UnknownCells returns the number of springs whose condition is [Unknown].
func (r Row) UnknownCells() int {
	total := 0

	for _, run := range r.runs {
		if run.Condition == Unknown {
			total += run.Len
		}
	}

	return total
}

// IsResolved reports whether the row has no unknown springs.
func (r Row) IsResolved() bool {
	return !slices.ContainsFunc(r.runs, func(run Run) bool {
		return run.Condition == Unknown
	})
}

// DamagedGroups returns the lengths of the damaged runs in order. For a
// resolved row this is the group list the row actually forms.
func (r Row) DamagedGroups() []int {
	var groups []int

	for _, run := range r.runs {
		if run.Condition == Damaged {
			groups = append(groups, run.Len)
		}
	}

	return groups
}

// Cells expands the runs into one condition per spring.
func (r Row) Cells() []Condition {
	cells := make([]Condition, 0, r.TotalLength())

	for _, run := range r.runs {
		for range run.Len {
			cells = append(cells, run.Condition)
		}
	}

	return cells
}

// Unfold returns the row repeated k times with an unknown spring between
// each copy, and the group lengths repeated k times.
func (r Row) Unfold(k int) (Row, error) {
	if k < 1 {
		return Row{}, fmt.Errorf("%w: got %d", ErrInvalidUnfold, k)
	}

	runs := make([]Run, 0, k*(len(r.runs)+1))
	runs = append(runs, r.runs...)

	for range k - 1 {
		runs = append(runs, Run{Condition: Unknown, Len: 1})
		runs = append(runs, r.runs...)
	}

	targets := make([]int, 0, k*len(r.targets))
	for range k {
		targets = append(targets, r.targets...)
	}

	return Row{runs: MergeAdjacent(runs), targets: targets}, nil
}

// Equal reports whether both rows have the same runs and group lengths.
func (r Row) Equal(other Row) bool {
	return slices.Equal(r.runs, other.runs) && slices.Equal(r.targets, other.targets)
}

// String returns the row in record form, e.g. "???.### 1,1,3".
func (r Row) String() string {
	var builder strings.Builder

	for _, run := range r.runs {
		builder.WriteString(strings.Repeat(string(run.Condition.Symbol()), run.Len))
	}

	builder.WriteByte(' ')

	for i, target := range r.targets {
		if i > 0 {
			builder.WriteByte(',')
		}

		builder.WriteString(strconv.Itoa(target))
	}

	return builder.String()
}
