package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNothingToUpdate is returned when an update payload carries no
// recognised field.
var ErrNothingToUpdate = errors.New("nothing to update")

// Issue is one rejected input, reported in the order it was found.
type Issue struct {
	Type  string          `json:"type,omitempty"`
	Loc   []string        `json:"loc,omitempty"`
	Msg   string          `json:"msg"`
	Input json.RawMessage `json:"input,omitempty"`
}

// ValidationError collects every issue found in a payload.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, strings.Join(is.Loc, ".")+": "+is.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports a missing entity or an empty list result.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NotFound(msg string) error { return &NotFoundError{Msg: msg} }

// StorageError wraps a failure raised by the database driver.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
