package common

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message. All contract violations reported by the cursor,
// container, queue and grouper packages are of this type.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("xgroup error (code %s): %s", e.Code, e.Msg)
}

// Is reports whether target is an *Error with the same code.
// This allows errors.Is(err, &common.Error{Code: common.RetCNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// Errorf creates a new Error with the given code and a formatted message.
func Errorf(code RetCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// HasCode reports whether err (or any error it wraps) is an *Error with the given code.
func HasCode(err error, code RetCode) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                       // 1: Operation failed due to an inconsistent internal state.
	RetCInvalidConfiguration                // 2: Invalid construction parameters.
	RetCNotFound                            // 3: The requested element or handle does not exist.
	RetCUnsupportedOperation                // 4: Operation is not supported by the implementation.
	RetCIllegalState                        // 5: Operation called before open or after close.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidConfiguration:
		return "InvalidConfiguration"
	case RetCNotFound:
		return "NotFound"
	case RetCUnsupportedOperation:
		return "UnsupportedOperation"
	case RetCIllegalState:
		return "IllegalState"
	default:
		return "Unknown"
	}
}
