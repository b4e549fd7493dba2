package models

import (
	"errors"
	"fmt"
)

// ErrInvalidLogbookFile is the single error kind for any structural problem with a logbook export
var ErrInvalidLogbookFile = errors.New("invalid logbook file")

// FormatError describes a row or field that could not be decoded
type FormatError struct {
	Row    string // raw row, comma-joined
	Column string // schema column name, empty for row-level errors
	Reason string
}

func (e *FormatError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: column %s: %s (row %q)", ErrInvalidLogbookFile, e.Column, e.Reason, e.Row)
	}
	return fmt.Sprintf("%s: %s (row %q)", ErrInvalidLogbookFile, e.Reason, e.Row)
}

// Unwrap lets callers match any FormatError with errors.Is(err, ErrInvalidLogbookFile)
func (e *FormatError) Unwrap() error {
	return ErrInvalidLogbookFile
}
