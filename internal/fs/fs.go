// Package fs provides the filesystem operations springs needs, behind an
// interface so commands can be tested against a fake.
//
// The main types are:
//   - [FS]: interface for filesystem operations
//   - [Real]: production implementation using [os] package
//   - [Faulty]: wrapper that fails chosen operations, for tests
//
// Example usage:
//
//	fs := fs.NewReal()
//	f, err := fs.Open("input.txt")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	rows, err := springs.ParseInput(f)
package fs

import (
	"io"
	"os"
)

// FS defines the filesystem operations used by springs.
//
// All methods mirror their [os] package equivalents.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (io.ReadCloser, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so readers never see a partial report.
	WriteFileAtomic(path string, data []byte) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)
}

// Compile-time interface check.
var _ io.ReadCloser = (*os.File)(nil)
