package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/springs/internal/cli"
)

const exampleInput = `???.### 1,1,3
.??..??...?##. 1,1,3
?#?#?#?#?#?#?#? 1,3,1,6
????.#...#... 4,1,1
????.######..#####. 1,6,5
?###???????? 3,2,1
`

func Test_Solve_File_Argument_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("input.txt", exampleInput)

	stdout := c.MustRun("solve", "input.txt")

	assert.Equal(t, "part1=21\npart2=525152", stdout)
}

func Test_Solve_Workers_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"solve", "-j", "4", "input.txt"},
		{"solve", "--workers=16", "input.txt"},
	} {
		c := cli.NewCLI(t)
		c.WriteFile("input.txt", exampleInput)

		assert.Equal(t, "part1=21\npart2=525152", c.MustRun(args...), "args=%v", args)
	}
}

func Test_Solve_Stdin_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.RunWithInput(exampleInput, "solve")

	require.Equal(t, 0, exitCode, "stderr: %s", stderr)
	assert.Equal(t, "part1=21\npart2=525152\n", stdout)
	assert.Empty(t, stderr)
}

func Test_Solve_Input_From_Config_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("puzzles/day12.txt", exampleInput)
	c.WriteFile(".springs.json", `{
		// relative to the project directory
		"input": "puzzles/day12.txt",
	}`)

	assert.Equal(t, "part1=21\npart2=525152", c.MustRun("solve"))
}

func Test_Solve_Argument_Overrides_Config_Input_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".springs.json", `{"input": "missing.txt"}`)
	c.WriteFile("small.txt", "?###???????? 3,2,1\n")

	assert.Equal(t, "part1=10\npart2=506250", c.MustRun("solve", "small.txt"))
}

func Test_Solve_Part_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		part string
		want string
	}{
		{part: "1", want: "part1=21"},
		{part: "2", want: "part2=525152"},
	} {
		t.Run("part "+tt.part, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			c.WriteFile("input.txt", exampleInput)

			assert.Equal(t, tt.want, c.MustRun("solve", "--part", tt.part, "input.txt"))
		})
	}
}

func Test_Solve_Unfold_Factor_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("input.txt", exampleInput)

	// Unfolding once leaves rows as they are, so both parts agree.
	assert.Equal(t, "part1=21\npart2=21", c.MustRun("solve", "--unfold", "1", "input.txt"))

	c.WriteFile(".springs.json", `{"unfold": 1}`)
	assert.Equal(t, "part1=21\npart2=21", c.MustRun("solve", "input.txt"))
}

func Test_Solve_Out_Writes_Report_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("input.txt", exampleInput)

	stdout := c.MustRun("solve", "-o", "out/report.json", "input.txt")
	assert.Equal(t, "part1=21\npart2=525152", stdout)

	var report struct {
		Input          string   `json:"input"`
		Rows           int      `json:"rows"`
		Unfold         int      `json:"unfold"`
		PartOne        uint64   `json:"part1"`
		PartTwo        uint64   `json:"part2"`
		Counts         []uint64 `json:"counts"`
		UnfoldedCounts []uint64 `json:"unfolded_counts"`
	}

	require.NoError(t, json.Unmarshal([]byte(c.ReadFile("out/report.json")), &report))

	assert.Equal(t, filepath.Join(c.Dir, "input.txt"), report.Input)
	assert.Equal(t, 6, report.Rows)
	assert.Equal(t, 5, report.Unfold)
	assert.Equal(t, uint64(21), report.PartOne)
	assert.Equal(t, uint64(525152), report.PartTwo)

	if diff := cmp.Diff([]uint64{1, 4, 1, 1, 4, 10}, report.Counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]uint64{1, 16384, 1, 16, 2500, 506250}, report.UnfoldedCounts); diff != "" {
		t.Errorf("unfolded counts mismatch (-want +got):\n%s", diff)
	}
}

func Test_Solve_Out_Omits_Skipped_Part_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("input.txt", exampleInput)
	c.MustRun("solve", "--part=1", "--out", "report.json", "input.txt")

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(c.ReadFile("report.json")), &report))

	assert.Contains(t, report, "part1")
	assert.NotContains(t, report, "part2")
	assert.NotContains(t, report, "unfolded_counts")
}

func Test_Solve_Progress_Logs_Rows_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("input.txt", exampleInput)

	stdout, stderr, exitCode := c.Run("solve", "--progress", "input.txt")

	require.Equal(t, 0, exitCode, "stderr: %s", stderr)
	assert.Equal(t, "part1=21\npart2=525152\n", stdout)
	cli.AssertContains(t, stderr, `msg="row counted" part=1 done=6 total=6`)
	cli.AssertContains(t, stderr, `msg="row counted" part=2 done=6 total=6`)
}

func Test_Solve_Empty_Input_Warns_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.RunWithInput("\n\n", "solve")

	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "part1=0\npart2=0\n", stdout)
	cli.AssertContains(t, stderr, "warning: input has no rows")
}

func Test_Solve_Errors_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name: "missing file",
			args: []string{"solve", "nope.txt"},
			want: "input file not found",
		},
		{
			name: "too many args",
			args: []string{"solve", "a.txt", "b.txt"},
			want: "too many arguments",
		},
		{
			name: "bad part",
			args: []string{"solve", "--part", "3"},
			want: "--part must be 1 or 2",
		},
		{
			name: "zero unfold",
			args: []string{"solve", "--unfold", "0"},
			want: "unfold must be at least 1",
		},
		{
			name: "zero workers",
			args: []string{"solve", "-j", "0"},
			want: "workers must be at least 1",
		},
		{
			name:  "malformed row",
			args:  []string{"solve", "input.txt"},
			input: "???.### 1,1,3\n???.### 1,,3\n",
			want:  "line 2: springs: malformed row",
		},
		{
			name:  "count overflow",
			args:  []string{"solve", "input.txt"},
			input: "???.### 1,1,3\n" + strings.Repeat("?", 30) + " 1,1,1\n",
			want:  "part two: row 2: springs: count overflows uint64",
		},
		{
			name:  "unknown spring",
			args:  []string{"solve", "input.txt"},
			input: "??x.### 1,1,3\n",
			want:  "unknown spring 'x' at column 3",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			if tt.input != "" {
				c.WriteFile("input.txt", tt.input)
			}

			stderr := c.MustFail(tt.args...)
			cli.AssertContains(t, stderr, tt.want)
		})
	}
}

func Test_Solve_Out_Absolute_Path_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("input.txt", "???.### 1,1,3\n")

	out := filepath.Join(t.TempDir(), "report.json")
	c.MustRun("solve", "--out", out, "input.txt")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"part1": 1`)
}
