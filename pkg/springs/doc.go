// Package springs counts the arrangements of damaged springs in a Hot Springs
// condition record.
//
// A record line looks like:
//
//	???.### 1,1,3
//
// The left field lists each spring as operational (.), damaged (#) or
// unknown (?). The right field lists the lengths of every contiguous group of
// damaged springs, in order. An arrangement resolves each unknown spring to
// operational or damaged; it is valid when the resulting damaged groups match
// the listed lengths exactly.
//
// # Basic Usage
//
//	row, err := springs.Parse("?###???????? 3,2,1")
//	if err != nil {
//	    // errors.Is(err, springs.ErrMalformedRow)
//	}
//
//	n := springs.Count(row) // 10
//
//	unfolded, _ := row.Unfold(5)
//	n5 := springs.Count(unfolded) // 506250
//
// For a whole puzzle input:
//
//	rows, err := springs.ParseInput(file)
//	answers, err := springs.Solve(ctx, rows, springs.SumOptions{Unfold: 5})
//
// # Rows
//
// A [Row] stores springs run-length encoded as [Run] values. Runs are always
// maximal: two neighbouring runs never share a [Condition]. Rows are immutable;
// every accessor returns a copy.
//
// # Counting
//
// [Count] walks the row cell by cell and memoizes on (cell index, next group
// index), so the work is bounded by cells × groups instead of 2^unknowns.
// The memo table belongs to a single call. [Counts] and [SumCounts] may count
// rows on several goroutines ([SumOptions.Workers]); rows never share state.
//
// Counts are uint64. Long unfolded rows of unknown springs can exceed that;
// [Count] then saturates at math.MaxUint64 while [CountChecked], [Counts],
// [SumCounts] and [Sum] return [ErrCountOverflow]. Any count returned
// without an error is exact.
//
// # Error Handling
//
// Parsing, option validation and overflow fail. A row without any valid
// arrangement is not an error, it counts 0.
package springs
