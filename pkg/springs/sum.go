package springs

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultUnfold is the unfold factor of the puzzle's second part.
const DefaultUnfold = 5

// SumOptions configures [Counts], [SumCounts] and [Solve].
type SumOptions struct {
	// Unfold, when above 1, counts each row unfolded that many times.
	// Zero counts rows as given. [Solve] uses it for part two and defaults
	// it to [DefaultUnfold].
	Unfold int

	// Workers is the number of rows counted at once. Values below 2 count
	// sequentially on the calling goroutine.
	Workers int

	// Progress, if set, is called after each row is counted. done grows by
	// one per call; calls never overlap.
	Progress func(done, total int)
}

// Answers holds both puzzle parts.
type Answers struct {
	PartOne uint64
	PartTwo uint64
}

// Counts returns the arrangement count of every row, in input order. A row
// whose count does not fit in a uint64 fails with [ErrCountOverflow].
func Counts(ctx context.Context, rows []Row, opts SumOptions) ([]uint64, error) {
	if opts.Unfold < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidUnfold, opts.Unfold)
	}

	counts := make([]uint64, len(rows))
	tracker := progressTracker{total: len(rows), report: opts.Progress}

	countRow := func(i int) error {
		row := rows[i]

		if opts.Unfold > 1 {
			var err error

			row, err = row.Unfold(opts.Unfold)
			if err != nil {
				return err
			}
		}

		n, err := CountChecked(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}

		counts[i] = n
		tracker.done()

		return nil
	}

	if opts.Workers < 2 {
		for i := range rows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if err := countRow(i); err != nil {
				return nil, err
			}
		}

		return counts, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Workers)

	for i := range rows {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			return countRow(i)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Wait only reports errors from Go; a cancelled parent that stopped the
	// loop early has to be checked separately.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// SumCounts returns the sum of [Counts]. A row count or a total that does not
// fit in a uint64 is [ErrCountOverflow].
func SumCounts(ctx context.Context, rows []Row, opts SumOptions) (uint64, error) {
	counts, err := Counts(ctx, rows, opts)
	if err != nil {
		return 0, err
	}

	return Sum(counts)
}

// Solve computes part one (rows as given) and part two (rows unfolded
// opts.Unfold times, [DefaultUnfold] when zero).
func Solve(ctx context.Context, rows []Row, opts SumOptions) (Answers, error) {
	partTwo := opts
	if partTwo.Unfold == 0 {
		partTwo.Unfold = DefaultUnfold
	}

	partOne := opts
	partOne.Unfold = 0

	one, err := SumCounts(ctx, rows, partOne)
	if err != nil {
		return Answers{}, fmt.Errorf("part one: %w", err)
	}

	two, err := SumCounts(ctx, rows, partTwo)
	if err != nil {
		return Answers{}, fmt.Errorf("part two: %w", err)
	}

	return Answers{PartOne: one, PartTwo: two}, nil
}

type progressTracker struct {
	mu       sync.Mutex
	total    int
	finished int
	report   func(done, total int)
}

func (p *progressTracker) done() {
	if p.report == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.finished++
	p.report(p.finished, p.total)
}
