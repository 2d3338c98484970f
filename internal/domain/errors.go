package domain

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// Sentinels shared by every layer. Adapters wrap them; the HTTP adapter maps
// them to statuses.
var (
	// ErrNotFound: no comment has that id, or a downstream has no such
	// resource.
	ErrNotFound = errors.New("not found")
	// ErrValidation: the input was malformed before any command ran.
	ErrValidation = errors.New("validation error")
	// ErrConflict: the command does not apply to the comment's state.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable: a dependency could not answer.
	ErrUnavailable = errors.New("unavailable")
)

// Field messages used across request validation.
const (
	MsgRequired = "is required"
	MsgInvalid  = "is invalid"
)

// ValidationError lists failures per field. It matches ErrValidation with
// errors.Is.
type ValidationError struct {
	Fields map[string]string
}

// InvalidField reports a single field.
func InvalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Error lists the fields in name order so the text is stable.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	for i, field := range slices.Sorted(maps.Keys(e.Fields)) {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(field + ": " + e.Fields[field])
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
