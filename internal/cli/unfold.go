package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/springs/internal/config"
	"github.com/calvinalkan/springs/pkg/springs"
)

// UnfoldCmd returns the unfold command.
func UnfoldCmd(cfg *config.Config) *Command {
	flags := flag.NewFlagSet("unfold", flag.ContinueOnError)
	flags.IntP("times", "n", 0, "Unfold factor (default: config unfold)")

	return &Command{
		Flags:      flags,
		ConfigKeys: []string{"unfold"},
		Config:     cfg,
		Usage:      "unfold <row>",
		Short:      "Print a row unfolded",
		Long:       "Print the row repeated with an unknown spring between copies, and its groups repeated.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execUnfold(o, cfg, flags, args)
		},
	}
}

func execUnfold(o *IO, cfg *config.Config, flags *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errRowRequired
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: %v", errTooManyArgs, args[1:])
	}

	times := cfg.UnfoldFactor()
	if flags.Changed("times") {
		times, _ = flags.GetInt("times")
	}

	row, err := springs.Parse(args[0])
	if err != nil {
		return err
	}

	unfolded, err := row.Unfold(times)
	if err != nil {
		return err
	}

	o.Println(unfolded.String())

	return nil
}
