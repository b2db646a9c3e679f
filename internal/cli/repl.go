package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/springs/internal/config"
	"github.com/calvinalkan/springs/internal/fs"
	"github.com/calvinalkan/springs/pkg/springs"
)

const replPrompt = "springs> "

const replHelp = `Enter a row to count it, e.g.  ???.### 1,1,3
Commands:
  help              Show this help
  exit / quit / q   Exit`

// ReplCmd returns the repl command.
func ReplCmd(cfg *config.Config, fsys fs.FS, env map[string]string) *Command {
	flags := flag.NewFlagSet("repl", flag.ContinueOnError)
	flags.Bool("no-history", false, "Do not read or write the history file")

	return &Command{
		Flags:      flags,
		ConfigKeys: []string{"unfold"},
		Config:     cfg,
		Usage:      "repl",
		Short:      "Count rows interactively",
		Long: `Read rows one per line and print count=<n> unfolded=<n> for each.

On a terminal the prompt supports line editing and history. Otherwise rows
are read from stdin until EOF.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			noHistory, _ := flags.GetBool("no-history")

			r := &repl{io: o, unfold: cfg.UnfoldFactor()}
			if !noHistory {
				r.historyPath = historyPath(env)
			}

			if isTerminal(o.In()) {
				return r.runInteractive(ctx, fsys)
			}

			return r.runScript(ctx)
		},
	}
}

type repl struct {
	io          *IO
	unfold      int
	historyPath string
}

// historyPath returns $XDG_STATE_HOME/springs/history, else
// ~/.springs_history, else "" when neither is known.
func historyPath(env map[string]string) string {
	if state := env["XDG_STATE_HOME"]; state != "" {
		return filepath.Join(state, "springs", "history")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".springs_history")
	}

	return ""
}

func (r *repl) runInteractive(ctx context.Context, fsys fs.FS) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	if r.historyPath != "" {
		if exists, _ := fsys.Exists(r.historyPath); exists {
			if f, err := fsys.Open(r.historyPath); err == nil {
				_, _ = line.ReadHistory(f)
				_ = f.Close()
			}
		}

		defer r.saveHistory(line, fsys)
	}

	r.io.Println("springs repl. Type 'help' for usage, 'quit' to exit.")

	for ctx.Err() == nil {
		input, err := line.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if !r.handle(input) {
			return nil
		}
	}

	return ctx.Err()
}

func (r *repl) saveHistory(line *liner.State, fsys fs.FS) {
	var buf bytes.Buffer
	if _, err := line.WriteHistory(&buf); err != nil {
		return
	}

	if err := writeHistory(fsys, r.historyPath, buf.Bytes()); err != nil {
		r.io.Log().Warn("history not saved", "path", r.historyPath, "error", err)
	}
}

// writeHistory replaces the history file, creating its directory on first use.
func writeHistory(fsys fs.FS, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return fsys.WriteFileAtomic(path, data)
}

func (r *repl) runScript(ctx context.Context) error {
	scanner := bufio.NewScanner(r.io.In())

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !r.handle(scanner.Text()) {
			return nil
		}
	}

	return scanner.Err()
}

// handle processes one input line. Returns false when the session should end.
func (r *repl) handle(input string) bool {
	input = strings.TrimSpace(input)

	switch input {
	case "":
		return true
	case "exit", "quit", "q":
		return false
	case "help", "?":
		r.io.Println(replHelp)

		return true
	}

	row, err := springs.Parse(input)
	if err != nil {
		r.io.ErrPrintln("error:", err)

		return true
	}

	unfolded, err := row.Unfold(r.unfold)
	if err != nil {
		r.io.ErrPrintln("error:", err)

		return true
	}

	count, err := springs.CountChecked(row)
	if err != nil {
		r.io.ErrPrintln("error:", err)

		return true
	}

	unfoldedCount, err := springs.CountChecked(unfolded)
	if err != nil {
		r.io.ErrPrintln("error: unfolded:", err)

		return true
	}

	r.io.Printf("count=%d unfolded=%d\n", count, unfoldedCount)

	return true
}
