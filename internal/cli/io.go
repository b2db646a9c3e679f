package cli

import (
	"fmt"
	"io"
	"log/slog"
)

// IO handles command output. Warnings are collected and printed to stderr
// both before the first line of output and at the end, so they survive
// head/tail truncation.
type IO struct {
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	log      *slog.Logger
	warnings []string
	started  bool
}

// NewIO creates a new IO instance.
func NewIO(in io.Reader, out, errOut io.Writer, log *slog.Logger) *IO {
	return &IO{in: in, out: out, errOut: errOut, log: log}
}

// In returns the command's standard input.
func (o *IO) In() io.Reader {
	return o.in
}

// Log returns the diagnostic logger. It writes to stderr and never to
// command output.
func (o *IO) Log() *slog.Logger {
	return o.log
}

// Warn adds a warning. Any warning makes the command exit 1, but output
// written with Println still happens, so partial results stay visible.
func (o *IO) Warn(issue string, action string) {
	o.warnings = append(o.warnings, fmt.Sprintf("%s: %s", issue, action))
}

// Println writes to stdout. On first call, any collected warnings
// are printed to stderr first.
func (o *IO) Println(a ...any) {
	o.flushWarningsStart()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout. On first call, any collected
// warnings are printed to stderr first.
func (o *IO) Printf(format string, a ...any) {
	o.flushWarningsStart()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish prints warnings to stderr and returns exit code.
// Returns 1 if any warnings, 0 otherwise.
func (o *IO) Finish() int {
	// If no output happened but we have warnings, print them at "start" position
	o.flushWarningsStart()

	// Always print at end
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}

	if len(o.warnings) > 0 {
		return 1
	}

	return 0
}

func (o *IO) flushWarningsStart() {
	if !o.started && len(o.warnings) > 0 {
		for _, w := range o.warnings {
			_, _ = fmt.Fprintln(o.errOut, "warning:", w)
		}

		o.started = true
	}
}
