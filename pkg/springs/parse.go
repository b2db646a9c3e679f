package springs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads one record line: the spring conditions, whitespace, then the
// comma-separated damaged group lengths.
//
// Any failure is a [*MalformedRowError].
func Parse(line string) (Row, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Row{}, malformed(line, "want 2 whitespace-separated fields, got %d", len(fields))
	}

	runs, err := parseRuns(line, fields[0])
	if err != nil {
		return Row{}, err
	}

	targets, err := parseTargets(line, fields[1])
	if err != nil {
		return Row{}, err
	}

	return Row{runs: runs, targets: targets}, nil
}

// parseRuns run-length encodes the condition field. Equal neighbours are
// grouped as they are read, so the result is already maximal.
func parseRuns(line, field string) ([]Run, error) {
	var runs []Run

	for i := range len(field) {
		condition, ok := ParseCondition(field[i])
		if !ok {
			return nil, malformed(line, "unknown spring %q at column %d", field[i], i+1)
		}

		if last := len(runs) - 1; last >= 0 && runs[last].Condition == condition {
			runs[last].Len++

			continue
		}

		runs = append(runs, Run{Condition: condition, Len: 1})
	}

	return runs, nil
}

func parseTargets(line, field string) ([]int, error) {
	parts := strings.Split(field, ",")
	targets := make([]int, 0, len(parts))

	for i, part := range parts {
		if part == "" {
			return nil, malformed(line, "empty group length at position %d", i+1)
		}

		// ParseUint would call these syntax errors; name the sign instead.
		if part[0] == '+' || part[0] == '-' {
			return nil, malformed(line, "group length %q must be positive, without a sign", part)
		}

		n, err := strconv.ParseUint(part, 10, strconv.IntSize-1)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, malformed(line, "group length %q is too large", part)
			}

			return nil, malformed(line, "group length %q is not an integer", part)
		}

		if n < 1 {
			return nil, malformed(line, "group length %d must be positive", n)
		}

		targets = append(targets, int(n))
	}

	return targets, nil
}

// ParseInput parses a whole puzzle input, one record per line. Blank lines
// are skipped. The first malformed line stops parsing; the returned error
// names its 1-based line number and wraps the [*MalformedRowError].
func ParseInput(r io.Reader) ([]Row, error) {
	var rows []Row

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		row, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return rows, nil
}
