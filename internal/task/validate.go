package task

import (
	"errors"
	"strings"
)

// ErrEmptyDescription is the cause of every ValidationError.
var ErrEmptyDescription = errors.New("empty description")

// Field names the input a validation error belongs to.
type Field string

const (
	// FieldInput is the new-task input field.
	FieldInput Field = "input"

	// FieldEdit is the description field of the task being edited.
	FieldEdit Field = "edit"
)

// User-facing validation messages.
const (
	MsgEmptyInput = "Please enter a task description."
	MsgEmptyEdit  = "Task description cannot be empty."
)

// ValidationError rejects a mutation because of malformed input.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrEmptyDescription }

// ValidateDescription trims s and returns it, or a ValidationError for field
// when nothing is left.
func ValidateDescription(field Field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s != "" {
		return s, nil
	}
	msg := MsgEmptyInput
	if field == FieldEdit {
		msg = MsgEmptyEdit
	}
	return "", &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
