package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/springs/internal/config"
	"github.com/calvinalkan/springs/internal/fs"
)

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. The first signal received cancels the running command.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globalFlags := flag.NewFlagSet("springs", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.SetOutput(&strings.Builder{})

	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")
	flagCwd := globalFlags.StringP("cwd", "C", "", "Run as if started in `dir`")
	flagConfig := globalFlags.StringP("config", "c", "", "Use specified config `file`")
	flagVerbose := globalFlags.BoolP("verbose", "v", false, "Log debug diagnostics to stderr")

	if len(args) > 0 {
		args = args[1:]
	}

	if err := globalFlags.Parse(args); err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, globalFlags, nil)

		return 1
	}

	commandArgs := globalFlags.Args()

	if *flagHelp || len(commandArgs) == 0 {
		printUsage(out, globalFlags, nil)

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: *flagCwd,
		ConfigPath:      *flagConfig,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	logger := newLogger(errOut, *flagVerbose)
	logger.Debug("config loaded",
		"cwd", cfg.EffectiveCwd,
		"global", cfg.Sources.Global,
		"project", cfg.Sources.Project)

	commands := allCommands(&cfg, fs.NewReal(), env)

	name := commandArgs[0]

	cmd, ok := commands[name]
	if !ok {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case sig := <-sigCh:
				logger.Debug("signal received, cancelling", "signal", sig.String())
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	if in == nil {
		in = strings.NewReader("")
	}

	return cmd.Run(ctx, NewIO(in, out, errOut, logger), commandArgs[1:])
}

// commandOrder is the order commands appear in help output.
var commandOrder = []string{"solve", "count", "unfold", "repl", "print-config"}

func allCommands(cfg *config.Config, fsys fs.FS, env map[string]string) map[string]*Command {
	cmds := []*Command{
		SolveCmd(cfg, fsys),
		CountCmd(),
		UnfoldCmd(cfg),
		ReplCmd(cfg, fsys, env),
		PrintConfigCmd(cfg),
	}

	byName := make(map[string]*Command, len(cmds))
	for _, cmd := range cmds {
		byName[cmd.Name()] = cmd
	}

	return byName
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globalFlags *flag.FlagSet, commands map[string]*Command) {
	if commands == nil {
		cfg := config.Default()
		commands = allCommands(&cfg, fs.NewReal(), nil)
	}

	fprintln(w, `springs - Hot Springs arrangement counter

Usage: springs [global flags] <command> [args]

Global flags:`)

	var buf strings.Builder
	globalFlags.SetOutput(&buf)
	globalFlags.PrintDefaults()
	globalFlags.SetOutput(&strings.Builder{})
	_, _ = io.WriteString(w, buf.String())

	fprintln(w)
	fprintln(w, "Commands:")

	for _, name := range commandOrder {
		if cmd, ok := commands[name]; ok {
			fprintln(w, cmd.HelpLine())
		}
	}

	fprintln(w)
	fprintln(w, `Run "springs <command> --help" for command flags.`)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
