// Package errors provides the structured error type shared by the gremlin client.
//
// Every failure surfaced by a traversal's terminal call or by the connection
// layer is an [*Error] carrying a machine-readable [Code]. Upstream connection
// management keys on the code (and, for connection-state faults, on the
// [ClosedState]) to decide whether a connection must be recycled.
//
// # Error Codes
//
// The transport classifier in package aio produces exactly three codes:
//   - TRANSPORT: opaque transport fault, message only
//   - CONNECTION_STATE: recoverable, AlreadyClosed or ConnectionClosed
//   - CHANNEL_SEND: the connection's writer has gone away
//
// The remaining codes come from other layers (conversion, server status,
// serialization, configuration, pooling).
//
// # Usage
//
//	results, err := g.V().HasLabel("person").ToList(ctx)
//	if errors.IsRecoverable(err) {
//	    // reconnect and resubmit
//	}
//
//	if errors.Is(err, errors.ErrCodeRequest) {
//	    // server rejected the traversal
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Transport faults
	ErrCodeTransport       Code = "TRANSPORT"
	ErrCodeConnectionState Code = "CONNECTION_STATE"
	ErrCodeChannelSend     Code = "CHANNEL_SEND"

	// Value conversion
	ErrCodeCast Code = "CAST"

	// Server and protocol errors
	ErrCodeRequest       Code = "REQUEST"
	ErrCodeSerialization Code = "SERIALIZATION"
	ErrCodeAuth          Code = "AUTH"

	// Client-side setup errors
	ErrCodeConfig Code = "CONFIG"
	ErrCodePool   Code = "POOL"
)

// ClosedState identifies which connection-state fault a CONNECTION_STATE
// error carries.
type ClosedState int

const (
	// StateNone is the zero value used by every other code.
	StateNone ClosedState = iota
	// AlreadyClosed means the local side tried to use a connection it had closed.
	AlreadyClosed
	// ConnectionClosed means the peer closed the connection.
	ConnectionClosed
)

// String returns the state name.
func (s ClosedState) String() string {
	switch s {
	case AlreadyClosed:
		return "already closed"
	case ConnectionClosed:
		return "connection closed"
	default:
		return "none"
	}
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code        // Machine-readable error code
	Message string      // Human-readable message
	State   ClosedState // Set only for ErrCodeConnectionState
	Status  int         // Server status code, set only for ErrCodeRequest
	Cause   error       // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Closed creates a recoverable connection-state error.
func Closed(state ClosedState, cause error) *Error {
	return &Error{
		Code:    ErrCodeConnectionState,
		Message: state.String(),
		State:   state,
		Cause:   cause,
	}
}

// Request creates an error for a non-success server status.
func Request(status int, message string) *Error {
	return &Error{
		Code:    ErrCodeRequest,
		Message: message,
		Status:  status,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsRecoverable reports whether err is a connection-state fault, the only
// case on which a connection should be re-established.
func IsRecoverable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeConnectionState && e.State != StateNone
	}
	return false
}

// IsFatal reports whether err means the owning connection can no longer
// dispatch requests.
func IsFatal(err error) bool {
	return Is(err, ErrCodeChannelSend)
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
