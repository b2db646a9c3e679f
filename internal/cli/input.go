package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/calvinalkan/springs/internal/config"
	"github.com/calvinalkan/springs/internal/fs"
	"github.com/calvinalkan/springs/pkg/springs"
)

var (
	errNoInput      = errors.New("no input: pass a file, set \"input\" in config, or pipe rows on stdin")
	errInputMissing = errors.New("input file not found")
)

const stdinSource = "(stdin)"

// loadRows reads the puzzle rows from cfg.InputAbs, or from stdin when no
// input is configured and stdin is not a terminal. Returns the rows and a
// description of where they came from.
func loadRows(o *IO, fsys fs.FS, cfg config.Config) ([]springs.Row, string, error) {
	if cfg.InputAbs == "" {
		if isTerminal(o.In()) {
			return nil, "", errNoInput
		}

		rows, err := springs.ParseInput(o.In())
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", stdinSource, err)
		}

		return rows, stdinSource, nil
	}

	f, err := fsys.Open(cfg.InputAbs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", errInputMissing, cfg.InputAbs)
		}

		return nil, "", err
	}

	defer func() { _ = f.Close() }()

	rows, err := springs.ParseInput(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", cfg.InputAbs, err)
	}

	return rows, cfg.InputAbs, nil
}
