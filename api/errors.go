// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for linearbuf.
//
// All fallible paths originate in the one-time storage acquisition;
// after successful initialization every buffer operation is infallible
// by contract.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	// ErrInvalidArgument: a zero size was requested, or the doubled
	// page-rounded size overflows the address width. Permanent.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfMemory: a resource ceiling (memory, mapping count,
	// descriptor count) was hit. Retrying later may succeed.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrTryAgain: another thread mapped into the address range
	// intended for the mirror half. Transient; callers should retry,
	// ideally before the process goes multi-threaded.
	ErrTryAgain = errors.New("try again")

	// ErrNotSupported: the platform has no memory aliasing primitive.
	ErrNotSupported = errors.New("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeOutOfMemory
	ErrCodeTryAgain
	ErrCodeNotSupported
	ErrCodeInternal
)

// sentinel maps codes onto the errors.Is anchors above.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeOutOfMemory:
		return ErrOutOfMemory
	case ErrCodeTryAgain:
		return ErrTryAgain
	case ErrCodeNotSupported:
		return ErrNotSupported
	default:
		return nil
	}
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "OK"
	case ErrCodeInvalidArgument:
		return "InvalidArgument"
	case ErrCodeOutOfMemory:
		return "OutOfMemory"
	case ErrCodeTryAgain:
		return "TryAgain"
	case ErrCodeNotSupported:
		return "NotSupported"
	default:
		return "Internal"
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (context: %+v)", e.Code, e.Message, e.Context)
}

// Is makes errors.Is(err, api.ErrTryAgain) and friends work.
func (e *Error) Is(target error) bool {
	return target == e.Code.sentinel()
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
