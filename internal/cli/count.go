package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/springs/pkg/springs"
)

var errRowRequired = errors.New("row is required")

// CountCmd returns the count command.
func CountCmd() *Command {
	flags := flag.NewFlagSet("count", flag.ContinueOnError)
	flags.Int("unfold", 1, "Unfold each row `N` times before counting")

	return &Command{
		Flags: flags,
		Usage: "count <row>...",
		Short: "Count arrangements of single rows",
		Long: `Print the arrangement count of each row argument, one per line.

Each row is a full record line and usually needs quoting:
  springs count '???.### 1,1,3' '?###???????? 3,2,1'`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execCount(o, flags, args)
		},
	}
}

func execCount(o *IO, flags *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errRowRequired
	}

	unfold, _ := flags.GetInt("unfold")
	if unfold < 1 {
		return fmt.Errorf("%w: got %d", springs.ErrInvalidUnfold, unfold)
	}

	// Parse and count everything first so a bad row prints nothing.
	rows := make([]springs.Row, 0, len(args))

	for _, arg := range args {
		row, err := springs.Parse(arg)
		if err != nil {
			return err
		}

		row, err = row.Unfold(unfold)
		if err != nil {
			return err
		}

		rows = append(rows, row)
	}

	counts := make([]uint64, 0, len(rows))

	for i, row := range rows {
		n, err := springs.CountChecked(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}

		counts = append(counts, n)
	}

	for _, n := range counts {
		o.Println(n)
	}

	return nil
}
