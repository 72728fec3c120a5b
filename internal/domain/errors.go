package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("actor does not own the resource")
)

// ValidationError rejects a request before any mutation happens.
type ValidationError struct {
	fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.fields[field] = append(e.fields[field], msg)
	return e
}

func (e *ValidationError) HasErrors() bool {
	return len(e.fields) > 0
}

func (e *ValidationError) Fields() map[string][]string {
	return e.fields
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%+v", e.fields)
}

func IsValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var validationError *ValidationError
	if errors.As(err, &validationError) {
		return validationError
	}

	return nil
}
