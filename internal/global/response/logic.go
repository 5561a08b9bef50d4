package response

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorContextKey stores the failing error in gin.Context for reporting.
const ErrorContextKey = "error"

// ResponseContextKey stores the serialized response body for reporting.
const ResponseContextKey = "response_body"

// Error carries a business code, a client-facing message, the original error
// chain and a stack trace for Sentry extraction.
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
	Origin  string `json:"origin,omitempty"`
	// status is the HTTP status the envelope is written with.
	status int
	// cause keeps the original error for Unwrap() and Sentry.
	cause error
	// stack keeps the trace for Sentry extraction.
	stack pkgerrors.StackTrace
}

func newError(status int, code int32, msg string) *Error {
	return &Error{
		Code:    code,
		Message: msg,
		status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

// GetCode implements the sentry CodedError interface.
func (e *Error) GetCode() int32 {
	return e.Code
}

// Status returns the HTTP status the error maps to.
func (e *Error) Status() int {
	return e.status
}

// Unwrap exposes the original error to errors.Is/As and Sentry.
func (e *Error) Unwrap() error {
	return e.cause
}

// StackTrace implements the pkg/errors stackTracer interface.
func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if e.cause != nil {
		type stackTracer interface {
			StackTrace() pkgerrors.StackTrace
		}
		if st, ok := e.cause.(stackTracer); ok {
			return st.StackTrace()
		}
	}
	return nil
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithOrigin attaches the original error for debug output while keeping the
// chain intact for Sentry stack extraction.
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}

	wrappedErr := ensureStack(err)

	newErr := &Error{
		Code:    e.Code,
		Message: e.Message,
		Origin:  fmt.Sprintf("%+v", wrappedErr),
		status:  e.status,
		cause:   wrappedErr,
	}

	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	if st, ok := wrappedErr.(stackTracer); ok {
		newErr.stack = st.StackTrace()
	}

	return newErr
}

// WithTips appends extra client-visible detail to the message.
func (e *Error) WithTips(details ...string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message + " " + fmt.Sprintf("%v", details),
		status:  e.status,
		cause:   e.cause,
		stack:   e.stack,
	}
}

// ensureStack adds a stack trace to err unless it already carries one.
func ensureStack(err error) error {
	if err == nil {
		return nil
	}
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return pkgerrors.WithStack(err)
}
