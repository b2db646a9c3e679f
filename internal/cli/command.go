package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/springs/internal/config"
	"github.com/calvinalkan/springs/pkg/springs"
)

// Command is one springs subcommand: its flags, help text and body.
type Command struct {
	// Flags holds the command's own flags. Global flags are parsed by Run
	// before the command is looked up.
	Flags *flag.FlagSet

	// Usage follows "springs" in help and starts with the command name,
	// e.g. "solve [file]" or "count <row>...".
	Usage string

	// Short is the one-line summary in the command list.
	Short string

	// Long is the description in "springs <cmd> --help"; Short if empty.
	Long string

	// ConfigKeys are the config file keys the command reads. Help lists them
	// with their effective values from Config.
	ConfigKeys []string

	// Config is the loaded configuration shown in help. May be nil.
	Config *config.Config

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine returns the command's row in the main usage listing. Commands
// that accept puzzle rows on stdin are marked.
func (c *Command) HelpLine() string {
	line := fmt.Sprintf("  %-22s %s", c.Usage, c.Short)
	if c.readsStdin() {
		line += " (stdin)"
	}

	return line
}

func (c *Command) readsStdin() bool {
	for _, key := range c.ConfigKeys {
		if key == "input" {
			return true
		}
	}

	return c.Name() == "repl"
}

// PrintHelp prints "springs <cmd> --help": usage, description, flags, and
// the config keys the command falls back to when a flag is not given.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: springs", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		var buf strings.Builder

		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		c.Flags.SetOutput(&strings.Builder{})

		o.Println()
		o.Println("Flags:")
		o.Printf("%s", buf.String())
	}

	if c.Config == nil || len(c.ConfigKeys) == 0 {
		return
	}

	o.Println()
	o.Printf("Config (%s):\n", c.Config.Source())

	for _, key := range c.ConfigKeys {
		if value, ok := c.Config.Value(key); ok {
			o.Printf("  %-10s %s\n", key, value)
		}
	}
}

// Run parses flags and executes the command. Returns exit code.
// Errors go to stderr; flag errors are followed by the command's help.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)

		if errors.Is(err, springs.ErrCountOverflow) {
			o.ErrPrintln("hint: the count exceeds 2^64; try a smaller --unfold")
		}

		return 1
	}

	return o.Finish()
}
