package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound        = errors.New("note not found")
	ErrInvalidNote     = errors.New("invalid note")
	ErrInvalidDateTime = errors.New("invalid expiration date or time")
	ErrTodoNotFound    = errors.New("todo item not found")
	ErrReadOnly        = errors.New("storage is in read-only mode")
	ErrCorrupt         = errors.New("stored notes are unreadable")
)

// ValidationError reports a rejected field on create or edit.
// It matches ErrInvalidNote with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidNote
}

func validateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "Title is required"}
	}
	return nil
}
