package springs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/springs/pkg/springs"
)

const exampleInput = `???.### 1,1,3
.??..??...?##. 1,1,3
?#?#?#?#?#?#?#? 1,3,1,6
????.#...#... 4,1,1
????.######..#####. 1,6,5
?###???????? 3,2,1
`

func op(n int) springs.Run { return springs.Run{Condition: springs.Operational, Len: n} }
func dmg(n int) springs.Run { return springs.Run{Condition: springs.Damaged, Len: n} }
func unk(n int) springs.Run { return springs.Run{Condition: springs.Unknown, Len: n} }

func mustRow(t *testing.T, runs []springs.Run, targets ...int) springs.Row {
	t.Helper()

	row, err := springs.NewRow(runs, targets)
	require.NoError(t, err)

	return row
}

func mustParse(t *testing.T, line string) springs.Row {
	t.Helper()

	row, err := springs.Parse(line)
	require.NoError(t, err, "parse %q", line)

	return row
}

func exampleRows(t *testing.T) []springs.Row {
	t.Helper()

	return []springs.Row{
		mustRow(t, []springs.Run{unk(3), op(1), dmg(3)}, 1, 1, 3),
		mustRow(t, []springs.Run{op(1), unk(2), op(2), unk(2), op(3), unk(1), dmg(2), op(1)}, 1, 1, 3),
		mustRow(t, []springs.Run{
			unk(1), dmg(1), unk(1), dmg(1), unk(1), dmg(1), unk(1), dmg(1),
			unk(1), dmg(1), unk(1), dmg(1), unk(1), dmg(1), unk(1),
		}, 1, 3, 1, 6),
		mustRow(t, []springs.Run{unk(4), op(1), dmg(1), op(3), dmg(1), op(3)}, 4, 1, 1),
		mustRow(t, []springs.Run{unk(4), op(1), dmg(6), op(2), dmg(5), op(1)}, 1, 6, 5),
		mustRow(t, []springs.Run{unk(1), dmg(3), unk(8)}, 3, 2, 1),
	}
}
