package pageindex

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// ESTRUCTURE reports a malformed document tree: a missing root,
	// duplicate or empty ids, or levels that disagree with depth.
	ESTRUCTURE = "structure"

	// EDANGLING reports a cross-reference whose target does not exist.
	EDANGLING = "dangling_reference"

	// ETRANSITION reports a decision that violates the tree or the
	// navigation stack, such as descending into a non-child.
	ETRANSITION = "invalid_transition"

	// EORACLE reports a failed, malformed or refused oracle response.
	EORACLE = "oracle_failure"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
