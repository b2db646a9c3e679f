package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
)

// Op names an [FS] method for fault injection.
type Op string

// Operations that [Faulty] can fail.
const (
	OpOpen            Op = "open"
	OpWriteFileAtomic Op = "write"
	OpMkdirAll        Op = "mkdir"
	OpExists          Op = "stat"
)

// InjectedError marks an error as intentionally injected by [Faulty].
//
// It wraps a *fs.PathError so errors.Is/As still see the cause.
type InjectedError struct {
	Err error
}

func (e *InjectedError) Error() string {
	return e.Err.Error()
}

func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by [Faulty].
func IsInjected(err error) bool {
	var injected *InjectedError

	return errors.As(err, &injected)
}

// Faulty wraps an [FS] and fails selected operations.
//
// Operations without an entry in Fail pass through to FS. Faulty is not safe
// for concurrent mutation of Fail; set it up before use.
type Faulty struct {
	FS   FS
	Fail map[Op]error
}

// NewFaulty returns a [Faulty] over fsys with no failures configured.
func NewFaulty(fsys FS) *Faulty {
	return &Faulty{FS: fsys, Fail: map[Op]error{}}
}

// FailOn makes op fail with err and returns f for chaining.
func (f *Faulty) FailOn(op Op, err error) *Faulty {
	f.Fail[op] = err

	return f
}

func (f *Faulty) Open(path string) (io.ReadCloser, error) {
	if err := f.injected(OpOpen, path); err != nil {
		return nil, err
	}

	return f.FS.Open(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte) error {
	if err := f.injected(OpWriteFileAtomic, path); err != nil {
		return err
	}

	return f.FS.WriteFileAtomic(path, data)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.injected(OpMkdirAll, path); err != nil {
		return err
	}

	return f.FS.MkdirAll(path, perm)
}

func (f *Faulty) Exists(path string) (bool, error) {
	if err := f.injected(OpExists, path); err != nil {
		return false, err
	}

	return f.FS.Exists(path)
}

func (f *Faulty) injected(op Op, path string) error {
	err, ok := f.Fail[op]
	if !ok {
		return nil
	}

	return &InjectedError{Err: &iofs.PathError{Op: string(op), Path: path, Err: err}}
}

var _ FS = (*Faulty)(nil)
