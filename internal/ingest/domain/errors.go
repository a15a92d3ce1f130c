package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyFile means the upload had no data rows after the header.
var ErrEmptyFile = errors.New("file contains no data rows")

// MissingColumnError reports every required column that could not be
// located in the header row.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// UnreadableFileError wraps a failure to read the upload before any
// parsing began.
type UnreadableFileError struct {
	Name string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("unable to read file %q: %v", e.Name, e.Err)
}

func (e *UnreadableFileError) Unwrap() error { return e.Err }

// IsStructural reports whether err aborts a whole ingestion pass, as
// opposed to a per-row rejection that only shows up in the summary.
func IsStructural(err error) bool {
	if err == nil {
		return false
	}
	var missing *MissingColumnError
	var unreadable *UnreadableFileError
	return errors.Is(err, ErrEmptyFile) || errors.As(err, &missing) || errors.As(err, &unreadable)
}
