// Package api
//
// Shared error types and small contracts between the decoding core and
// the layers that feed it.

package api

import "fmt"

// Common sentinel errors used across the library.
var (
	ErrReaderClosed    = fmt.Errorf("reader is closed")
	ErrTransportClosed = fmt.Errorf("transport is closed")
)

// ErrorCode classifies structured errors.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeFrameTooLarge
	ErrCodeResourceExhausted
)

// ErrBufferLimit reports that frame accumulation would exceed the
// configured buffer limit.
var ErrBufferLimit = NewError(ErrCodeResourceExhausted,
	"accumulation buffer limit exceeded")

// Error is a structured error carrying a code and optional context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext returns a copy of e carrying an extra context entry, leaving
// the original (typically a package-level sentinel) untouched.
func (e *Error) WithContext(key string, value any) *Error {
	ctx := make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Error{Code: e.Code, Message: e.Message, Context: ctx}
}

// Is makes errors.Is match structured errors by code, so a sentinel like
// protocol.ErrFrameTooLarge matches contextual copies of itself.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
