package cli_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/springs/internal/cli"
)

func Test_Invalid_Global_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("--invalid-flag", "solve")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stdout, ""; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")

	cli.AssertContains(t, stderr, "Global flags:")
	cli.AssertContains(t, stderr, "--cwd")
	cli.AssertContains(t, stderr, "--config")
	cli.AssertContains(t, stderr, "--verbose")
}

func Test_Bare_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	// Call Run directly without test helper (which adds --cwd)
	var stdout, stderr bytes.Buffer

	exitCode := cli.Run(nil, &stdout, &stderr, []string{"springs"}, nil, nil)

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	if got, want := stderr.String(), ""; got != want {
		t.Errorf("stderr=%q, want=%q", got, want)
	}

	cli.AssertContains(t, stdout.String(), "springs - Hot Springs arrangement counter")
	cli.AssertContains(t, stdout.String(), "solve [file]")
	cli.AssertContains(t, stdout.String(), "count <row>...")
}

func Test_Main_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		args []string
	}{
		{name: "long flag", args: []string{"--help"}},
		{name: "short flag", args: []string{"-h"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stdout, stderr, exitCode := c.Run(tt.args...)

			if got, want := exitCode, 0; got != want {
				t.Errorf("exitCode=%d, want=%d", got, want)
			}

			if got, want := stderr, ""; got != want {
				t.Errorf("stderr=%q, want=%q", got, want)
			}

			for _, want := range []string{"solve [file]", "count <row>...", "unfold <row>", "repl", "print-config"} {
				cli.AssertContains(t, stdout, want)
			}
		})
	}
}

func Test_Unknown_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("frobnicate")

	cli.AssertContains(t, stderr, "unknown command: frobnicate")
	cli.AssertContains(t, stderr, "Commands:")
}

func Test_Command_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		command string
		usage   string
		flag    string
	}{
		{command: "solve", usage: "Usage: springs solve [file]", flag: "--workers"},
		{command: "count", usage: "Usage: springs count <row>...", flag: "--unfold"},
		{command: "unfold", usage: "Usage: springs unfold <row>", flag: "--times"},
		{command: "repl", usage: "Usage: springs repl", flag: "--no-history"},
	} {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stdout := c.MustRun(tt.command, "--help")

			cli.AssertContains(t, stdout, tt.usage)
			cli.AssertContains(t, stdout, tt.flag)
		})
	}
}

func Test_Unknown_Command_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("count", "--bogus", "#.# 1,1")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "unknown flag: --bogus")
	cli.AssertContains(t, stdout, "Usage: springs count")
}

func Test_Invalid_Config_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".springs.json", `{"workers": 0}`)

	stderr := c.MustFail("solve")
	cli.AssertContains(t, stderr, "workers must be at least 1")
}

func Test_Verbose_Flag_Logs_Config_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("input.txt", "???.### 1,1,3\n")

	stdout, stderr, exitCode := c.Run("-v", "solve", "input.txt")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr: %s", got, want, stderr)
	}

	cli.AssertContains(t, stdout, "part1=1")
	cli.AssertContains(t, stderr, "config loaded")
	cli.AssertContains(t, stderr, "input parsed")
}

func Test_Command_Help_Lists_Config_Values_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("solve", "--help")
	cli.AssertContains(t, stdout, "Config (defaults):")
	cli.AssertContains(t, stdout, "  input      (stdin)")
	cli.AssertContains(t, stdout, "  unfold     5")
	cli.AssertContains(t, stdout, "  workers    1")

	c.WriteFile(".springs.json", `{"unfold": 3, "input": "day12.txt"}`)

	stdout = c.MustRun("unfold", "--help")
	cli.AssertContains(t, stdout, "Config ("+filepath.Join(c.Dir, ".springs.json")+"):")
	cli.AssertContains(t, stdout, "  unfold     3")
	cli.AssertNotContains(t, stdout, "day12.txt")

	// count takes everything from its arguments.
	stdout = c.MustRun("count", "--help")
	cli.AssertNotContains(t, stdout, "Config (")
}

func Test_Main_Help_Marks_Stdin_Commands_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("--help")

	for _, line := range strings.Split(stdout, "\n") {
		switch {
		case strings.Contains(line, "solve [file]"), strings.Contains(line, "Count rows interactively"):
			cli.AssertContains(t, line, "(stdin)")
		case strings.Contains(line, "count <row>..."), strings.Contains(line, "unfold <row>"):
			cli.AssertNotContains(t, line, "(stdin)")
		}
	}
}

func Test_Overflow_Error_Prints_Hint_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("count", "--unfold", "5", strings.Repeat("?", 30)+" 1,1,1")

	cli.AssertContains(t, stderr, "count overflows uint64")
	cli.AssertContains(t, stderr, "hint: the count exceeds 2^64; try a smaller --unfold")
}
