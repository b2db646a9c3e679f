package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/springs/internal/config"
	"github.com/calvinalkan/springs/internal/fs"
	"github.com/calvinalkan/springs/pkg/springs"
)

var (
	errInvalidPart = errors.New("--part must be 1 or 2")
	errTooManyArgs = errors.New("too many arguments")
)

// SolveCmd returns the solve command.
func SolveCmd(cfg *config.Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("solve", flag.ContinueOnError)
	flags.Int("part", 0, "Only solve part `N` (1 or 2)")
	flags.Int("unfold", springs.DefaultUnfold, "Unfold factor for part two")
	flags.IntP("workers", "j", 1, "Rows counted in parallel")
	flags.Bool("progress", false, "Log each counted row to stderr")
	flags.StringP("out", "o", "", "Also write a JSON report to `file`")

	return &Command{
		Flags:      flags,
		ConfigKeys: []string{"input", "unfold", "workers", "progress"},
		Config:     cfg,
		Usage:      "solve [file]",
		Short:      "Sum arrangements for a puzzle input",
		Long: `Parse a puzzle input and print the sum of arrangement counts for the rows
as given (part1) and for every row unfolded (part2).

The input is the file argument, else "input" from config, else stdin when
stdin is not a terminal.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execSolve(ctx, o, cfg, fsys, flags, args)
		},
	}
}

// solveReport is the JSON document written by --out.
type solveReport struct {
	Input          string   `json:"input"`
	Rows           int      `json:"rows"`
	Unfold         int      `json:"unfold"`
	PartOne        *uint64  `json:"part1,omitempty"`
	PartTwo        *uint64  `json:"part2,omitempty"`
	Counts         []uint64 `json:"counts,omitempty"`
	UnfoldedCounts []uint64 `json:"unfolded_counts,omitempty"`
}

func execSolve(ctx context.Context, o *IO, cfg *config.Config, fsys fs.FS, flags *flag.FlagSet, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: %v", errTooManyArgs, args[1:])
	}

	part, _ := flags.GetInt("part")
	if flags.Changed("part") && part != 1 && part != 2 {
		return errInvalidPart
	}

	effective, err := cfg.With(solveOverrides(flags, args))
	if err != nil {
		return err
	}

	rows, source, err := loadRows(o, fsys, effective)
	if err != nil {
		return err
	}

	o.Log().Debug("input parsed", "source", source, "rows", len(rows))

	report := solveReport{
		Input:  source,
		Rows:   len(rows),
		Unfold: effective.UnfoldFactor(),
	}

	opts := springs.SumOptions{Workers: effective.WorkerCount()}

	if part != 2 {
		counts, sum, err := countPart(ctx, o, rows, opts, effective.ShowProgress(), 1)
		if err != nil {
			return fmt.Errorf("part one: %w", err)
		}

		report.Counts = counts
		report.PartOne = &sum
	}

	if part != 1 {
		opts.Unfold = effective.UnfoldFactor()

		counts, sum, err := countPart(ctx, o, rows, opts, effective.ShowProgress(), 2)
		if err != nil {
			return fmt.Errorf("part two: %w", err)
		}

		report.UnfoldedCounts = counts
		report.PartTwo = &sum
	}

	if report.PartOne != nil {
		o.Printf("part1=%d\n", *report.PartOne)
	}

	if report.PartTwo != nil {
		o.Printf("part2=%d\n", *report.PartTwo)
	}

	if len(rows) == 0 {
		o.Warn("input has no rows", "check that "+source+" is the puzzle input")
	}

	out, _ := flags.GetString("out")
	if out == "" {
		return nil
	}

	if !filepath.IsAbs(out) {
		out = filepath.Join(effective.EffectiveCwd, out)
	}

	return writeReport(fsys, out, report)
}

func solveOverrides(flags *flag.FlagSet, args []string) config.Config {
	var overrides config.Config

	if len(args) == 1 {
		overrides.Input = args[0]
	}

	if flags.Changed("unfold") {
		n, _ := flags.GetInt("unfold")
		overrides.Unfold = &n
	}

	if flags.Changed("workers") {
		n, _ := flags.GetInt("workers")
		overrides.Workers = &n
	}

	if flags.Changed("progress") {
		b, _ := flags.GetBool("progress")
		overrides.Progress = &b
	}

	return overrides
}

func countPart(
	ctx context.Context,
	o *IO,
	rows []springs.Row,
	opts springs.SumOptions,
	progress bool,
	part int,
) ([]uint64, uint64, error) {
	if progress {
		opts.Progress = func(done, total int) {
			o.Log().Info("row counted", "part", part, "done", done, "total", total)
		}
	}

	counts, err := springs.Counts(ctx, rows, opts)
	if err != nil {
		return nil, 0, err
	}

	sum, err := springs.Sum(counts)
	if err != nil {
		return nil, 0, err
	}

	return counts, sum, nil
}

func writeReport(fsys fs.FS, path string, report solveReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	data = append(data, '\n')

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}

	if err := fsys.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}

	return nil
}
