package httperr

import (
	"errors"
	"fmt"
)

// BadRequestError marks input rejected before any backend call. Field names the
// offending form field when one is known.
type BadRequestError struct {
	Field string
	msg   string
}

func (e *BadRequestError) Error() string { return e.msg }

func NewBadRequest(msg string) error { return &BadRequestError{msg: msg} }

func NewFieldError(field string, format string, args ...any) error {
	return &BadRequestError{Field: field, msg: fmt.Sprintf(format, args...)}
}

func IsBadRequest(err error) bool {
	_, ok := errors.AsType[*BadRequestError](err)
	return ok
}

// FieldOf returns the offending field of a BadRequestError, or "".
func FieldOf(err error) string {
	if e, ok := errors.AsType[*BadRequestError](err); ok {
		return e.Field
	}
	return ""
}
