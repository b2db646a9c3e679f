package springs

import (
	"fmt"
	"math"
	"math/bits"
)

// Count returns the number of ways the unknown springs of row can be
// resolved so that its damaged groups equal its group lengths exactly.
//
// A resolved row counts 1 if it already matches and 0 otherwise. A count that
// does not fit in a uint64 saturates at [math.MaxUint64]; use [CountChecked]
// to tell that apart from an exact result.
func Count(row Row) uint64 {
	n, _ := CountChecked(row)

	return n
}

// CountChecked is [Count] that reports [ErrCountOverflow] instead of
// returning a saturated count. The count is still returned, as
// [math.MaxUint64], alongside the error.
func CountChecked(row Row) (uint64, error) {
	a := newArrangements(row)

	n := a.count(0, 0)
	if a.overflow {
		return n, fmt.Errorf("%w: row has %d springs and %d groups", ErrCountOverflow, row.TotalLength(), len(row.targets))
	}

	return n, nil
}

// Sum adds counts, reporting [ErrCountOverflow] if the total does not fit in
// a uint64. On overflow the returned sum is [math.MaxUint64].
func Sum(counts []uint64) (uint64, error) {
	var total uint64

	for _, n := range counts {
		sum, carry := bits.Add64(total, n, 0)
		if carry != 0 {
			return math.MaxUint64, fmt.Errorf("%w: sum of %d counts", ErrCountOverflow, len(counts))
		}

		total = sum
	}

	return total, nil
}

// arrangements holds the memo for counting one row. It is built per call and
// never shared.
type arrangements struct {
	cells   []Condition
	targets []int

	// reach[i] is how many springs starting at i could all be damaged,
	// i.e. the distance to the next operational spring.
	reach []int

	// need[j] is the fewest springs that can hold targets[j:], separators
	// included.
	need []int

	memo  []uint64
	known []bool

	// overflow is set once any partial count saturates.
	overflow bool
}

func newArrangements(row Row) *arrangements {
	cells := row.Cells()
	targets := row.targets

	reach := make([]int, len(cells)+1)
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i] != Operational {
			reach[i] = reach[i+1] + 1
		}
	}

	need := make([]int, len(targets)+1)
	for j := len(targets) - 1; j >= 0; j-- {
		need[j] = need[j+1] + targets[j]
		if j+1 < len(targets) {
			need[j]++
		}
	}

	size := (len(cells) + 1) * (len(targets) + 1)

	return &arrangements{
		cells:   cells,
		targets: targets,
		reach:   reach,
		need:    need,
		memo:    make([]uint64, size),
		known:   make([]bool, size),
	}
}

// count returns the arrangements of cells[i:] that place exactly
// targets[j:]. The caller guarantees cells[i-1], if any, is not damaged.
func (a *arrangements) count(i, j int) uint64 {
	if i >= len(a.cells) {
		if j == len(a.targets) {
			return 1
		}

		return 0
	}

	if len(a.cells)-i < a.need[j] {
		return 0
	}

	key := i*(len(a.targets)+1) + j
	if a.known[key] {
		return a.memo[key]
	}

	var total uint64

	cell := a.cells[i]

	if cell != Damaged {
		total = a.add(total, a.count(i+1, j))
	}

	if cell != Operational && j < len(a.targets) {
		total = a.add(total, a.placeGroup(i, j))
	}

	a.memo[key] = total
	a.known[key] = true

	return total
}

// placeGroup counts the arrangements where damaged group j starts at i.
func (a *arrangements) placeGroup(i, j int) uint64 {
	length := a.targets[j]
	end := i + length

	if a.reach[i] < length {
		return 0
	}

	if end == len(a.cells) {
		return a.count(end, j+1)
	}

	// The spring after the group must be operational or the group grows.
	if a.cells[end] == Damaged {
		return 0
	}

	return a.count(end+1, j+1)
}

func (a *arrangements) add(x, y uint64) uint64 {
	sum, carry := bits.Add64(x, y, 0)
	if carry != 0 {
		a.overflow = true

		return math.MaxUint64
	}

	return sum
}
