// Package config loads springs configuration from JSONC files and CLI
// overrides.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/springs/pkg/springs"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized). Pointer fields distinguish "absent"
	// from an explicit zero so validation can reject the latter.
	Input    string `json:"input,omitempty"`
	Unfold   *int   `json:"unfold,omitempty"`
	Workers  *int   `json:"workers,omitempty"`
	Progress *bool  `json:"progress,omitempty"`

	// Resolved values (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	InputAbs     string `json:"-"` // Absolute path of Input, empty if Input is empty

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

const (
	defaultWorkers = 1

	// FileName is the default project config file name.
	FileName = ".springs.json"
)

// Default returns the default configuration.
func Default() Config {
	unfold := springs.DefaultUnfold
	workers := defaultWorkers
	progress := false

	return Config{
		Unfold:   &unfold,
		Workers:  &workers,
		Progress: &progress,
	}
}

// UnfoldFactor returns the configured unfold factor.
func (c Config) UnfoldFactor() int {
	if c.Unfold == nil {
		return springs.DefaultUnfold
	}

	return *c.Unfold
}

// WorkerCount returns the configured number of workers.
func (c Config) WorkerCount() int {
	if c.Workers == nil {
		return defaultWorkers
	}

	return *c.Workers
}

// ShowProgress reports whether per-row progress should be logged.
func (c Config) ShowProgress() bool {
	return c.Progress != nil && *c.Progress
}

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/springs/config.json if set, otherwise
// ~/.config/springs/config.json. Returns empty string if home directory
// cannot be determined.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "springs", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "springs", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for [Load].
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Overrides       Config            // CLI flag values; set fields win over every file
	Env             map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/springs/config.json or $XDG_CONFIG_HOME/springs/config.json)
// 3. Project config file at default location (.springs.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
	}

	cfg := Default()

	if path := globalPath(input.Env); path != "" {
		globalCfg, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = path
			cfg = merge(cfg, globalCfg)
		}
	}

	projectCfg, projectPath, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	cfg.EffectiveCwd = workDir

	return cfg.With(input.Overrides)
}

// With returns c with every set field of overlay applied, validated, and the
// input path resolved against EffectiveCwd.
func (c Config) With(overlay Config) (Config, error) {
	cfg := merge(c, overlay)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	switch {
	case cfg.Input == "":
		cfg.InputAbs = ""
	case filepath.IsAbs(cfg.Input):
		cfg.InputAbs = cfg.Input
	default:
		cfg.InputAbs = filepath.Join(cfg.EffectiveCwd, cfg.Input)
	}

	return cfg, nil
}

// loadProject loads the project config file (.springs.json) or an explicit
// config file. Returns the config, the path if loaded, and any error.
func loadProject(workDir, configPath string) (Config, string, error) {
	if configPath == "" {
		path := filepath.Join(workDir, FileName)

		cfg, loaded, err := loadFile(path, false)
		if err != nil || !loaded {
			return Config{}, "", err
		}

		return cfg, path, nil
	}

	path := configPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	// Check existence first to provide a clear "not found" error
	if _, err := os.Stat(path); err != nil {
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	cfg, _, err := loadFile(path, true)
	if err != nil {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadFile loads a config file. If mustExist is false, missing files return
// zero config. Returns the config, whether the file was loaded, and any error.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

// Parse decodes a JSONC config document. Comments and trailing commas are
// allowed; unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	decoder := json.NewDecoder(bytes.NewReader(standardized))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Input != "" {
		base.Input = overlay.Input
	}

	if overlay.Unfold != nil {
		base.Unfold = overlay.Unfold
	}

	if overlay.Workers != nil {
		base.Workers = overlay.Workers
	}

	if overlay.Progress != nil {
		base.Progress = overlay.Progress
	}

	return base
}

func validate(cfg Config) error {
	if n := cfg.UnfoldFactor(); n < 1 {
		return fmt.Errorf("%w: got %d", ErrUnfoldInvalid, n)
	}

	if n := cfg.WorkerCount(); n < 1 {
		return fmt.Errorf("%w: got %d", ErrWorkersInvalid, n)
	}

	return nil
}

// Keys lists the config file keys in the order [Format] prints them.
var Keys = []string{"input", "unfold", "workers", "progress"}

// Value returns the effective value of a config file key as text. An unset
// input reads as "(stdin)". Returns false for unknown keys.
func (c Config) Value(key string) (string, bool) {
	switch key {
	case "input":
		if c.InputAbs == "" {
			return "(stdin)", true
		}

		return c.InputAbs, true
	case "unfold":
		return strconv.Itoa(c.UnfoldFactor()), true
	case "workers":
		return strconv.Itoa(c.WorkerCount()), true
	case "progress":
		return strconv.FormatBool(c.ShowProgress()), true
	default:
		return "", false
	}
}

// Source names where the effective values came from: the project file, the
// global file, or "defaults".
func (c Config) Source() string {
	switch {
	case c.Sources.Project != "":
		return c.Sources.Project
	case c.Sources.Global != "":
		return c.Sources.Global
	default:
		return "defaults"
	}
}

// Format renders the effective values as key=value lines.
func Format(cfg Config) string {
	lines := make([]string, 0, len(Keys)+1)
	lines = append(lines, "effective_cwd="+cfg.EffectiveCwd)

	for _, key := range Keys {
		value, _ := cfg.Value(key)
		lines = append(lines, key+"="+value)
	}

	return strings.Join(lines, "\n")
}
