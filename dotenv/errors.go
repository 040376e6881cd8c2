package dotenv

import (
	"errors"
	"fmt"
)

// Error types describing why a load did nothing or skipped input.
// None of them is returned from Load; they surface through diagnostics
// and Result.

// ErrAlreadyLoaded is informational: the loader already ran and was not reset.
var ErrAlreadyLoaded = errors.New("dotenv already loaded, skipping")

// FileNotFoundError indicates the path is missing or not a regular file.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("dotenv file not found: %s", e.Path)
}

// ReadError indicates the file exists but could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read dotenv file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// LineError indicates a non-blank, non-comment line that is not KEY=VALUE.
type LineError struct {
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d does not match KEY=VALUE: %s", e.Line, e.Text)
}
