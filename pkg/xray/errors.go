package xray

import (
	"errors"
	"fmt"
)

// ErrNoMasterFile indicates the run was started without a master file.
var ErrNoMasterFile = errors.New("no master database file given")

// ErrNoNewFiles indicates the run was started without any new files.
var ErrNoNewFiles = errors.New("no search results files given")

// ParseError reports a file that could not be read. It aborts the run.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse file %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(file string, err error) *ParseError {
	return &ParseError{
		File: file,
		Err:  err,
	}
}
