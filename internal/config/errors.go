package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrUnfoldInvalid      = errors.New("unfold must be at least 1")
	ErrWorkersInvalid     = errors.New("workers must be at least 1")
)
