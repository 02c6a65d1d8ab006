package userbase

import (
	"errors"
	"fmt"
)

var (
	ErrBadValue      = errors.New("bad value")
	ErrInvalidRecord = errors.New("invalid record")
)

// RowError identifies the dataset row (and column, when known) that could not be mapped.
type RowError struct {
	Row    int
	Column string
	Value  string
	Cause  error
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d column %q (value %q): %v", e.Row, e.Column, e.Value, e.Cause)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Cause)
}

func (e *RowError) Unwrap() error {
	return e.Cause
}
