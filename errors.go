package paysync

import (
	"errors"
	"fmt"
)

// Validation failures. All of them are recoverable by fixing the input file
// and re-running; none of them causes any store interaction.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrInvalidFileType  = errors.New("not a csv file")
	ErrInvalidColumns   = errors.New("invalid column name")
	ErrDuplicateColumns = errors.New("duplicate column name")
	ErrMissingValue     = errors.New("missing value")
	ErrNotANumber       = errors.New("not a number")
	ErrNonPositiveValue = errors.New("must be a positive integer")
)

// ValidationError carries enough context (row, column, value) to fix the
// input. Row is the 1-based data row number, 0 for file-level failures.
type ValidationError struct {
	Err    error
	Row    int
	Column string
	Value  string
}

func (e *ValidationError) Error() string {
	msg := e.Err.Error()
	if e.Column != "" {
		msg = fmt.Sprintf("%s: column %q", msg, e.Column)
	}
	if e.Row > 0 {
		msg = fmt.Sprintf("%s: row %d", msg, e.Row)
	}
	if e.Value != "" {
		msg = fmt.Sprintf("%s: value %q", msg, e.Value)
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ParseError reports input that cannot be read as delimited text.
type ParseError struct {
	Row int
	Err error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("parse row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StoreError is fatal for the run: the transaction is rolled back and the
// run is not retried. Re-invoking the sync is the recovery path.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store: %s", e.Op)
	}
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
