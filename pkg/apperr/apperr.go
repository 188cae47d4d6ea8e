package apperr

import (
	"errors"
	"fmt"
)

// Failure classes, per the propagation policy: components only classify and
// re-raise, the caller decides what to show the user.
const (
	CodePrecondition    = "precondition"
	CodeValidation      = "validation"
	CodeRemote          = "remote"
	CodeNotFound        = "not_found"
	CodeUnauthenticated = "unauthenticated"
)

// Error standardizes failures crossing package boundaries.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Precondition(msg string) *Error {
	return &Error{Code: CodePrecondition, Message: msg}
}
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}
func Remote(msg string, err error) *Error {
	return &Error{Code: CodeRemote, Message: msg, Err: err}
}
func NotFound(msg string, err error) *Error {
	return &Error{Code: CodeNotFound, Message: msg, Err: err}
}
func Unauthenticated(msg string, err error) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg, Err: err}
}

// Is compares the target code regardless of wrapping.
func Is(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
