package apperr

import "strings"

// ValidationError reports user input that was rejected. Fields names the
// offending form fields, if known.
type ValidationError struct {
	Message string
	Fields  []string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		msg += " (" + strings.Join(e.Fields, ", ") + ")"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string, fields ...string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

func NewValidationWrap(msg string, err error, fields ...string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields, Err: err}
}
