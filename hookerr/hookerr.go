// Package hookerr defines the failure kinds shared by the build hooks.
//
// None of these are recovered by the hooks themselves. They propagate to the
// command line, which exits non-zero and aborts the surrounding build step.
package hookerr

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrMissingResource is the kind of a failure to find or open a version file, a board file or a source asset.
	ErrMissingResource = errors.New("missing resource")
	// ErrEmptyInput is the kind of a failure caused by a file with no readable first line.
	ErrEmptyInput = errors.New("empty input")
	// ErrMalformedInput is the kind of a failure caused by input that cannot be parsed or used as-is.
	ErrMalformedInput = errors.New("malformed input")
	// ErrWrite is the kind of a failure to write a destination file.
	ErrWrite = errors.New("write failed")
)

// A PathError records the operation and path that caused a failure, along with its kind.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the error's kind.
func (e *PathError) Is(target error) bool {
	return e.Kind == target
}

// Read classifies an error returned while opening or reading path.
func Read(op, path string, err error) error {
	if err == nil {
		return nil
	}
	kind := ErrMalformedInput
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		kind = ErrMissingResource
	}
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

// Write wraps an error returned while creating or writing path.
func Write(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Op: op, Path: path, Kind: ErrWrite, Err: err}
}

// Empty returns an ErrEmptyInput failure for path.
func Empty(op, path string) error {
	return &PathError{Op: op, Path: path, Kind: ErrEmptyInput}
}

// Malformed returns an ErrMalformedInput failure for path.
func Malformed(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Kind: ErrMalformedInput, Err: err}
}
