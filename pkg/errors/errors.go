package errors

import (
	stdErrors "errors"
	"fmt"
)

// Code discriminates the failure classes the Skyvia client can surface.
// Every failure path collapses into one *Error so callers have a single
// shape to handle.
type Code string

const (
	// CodeValidation marks bad caller input (tool arguments, paging
	// bounds) rejected before any request is issued.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeConfiguration marks a missing or invalid credential. Fatal to
	// the call and typically to process startup.
	CodeConfiguration Code = "CONFIGURATION_ERROR"
	// CodeTransport marks network-level failures: connection, DNS, TLS,
	// timeout, context cancellation. Never carries a status code.
	CodeTransport Code = "TRANSPORT_ERROR"
	// CodeHTTP marks a non-2xx upstream response. Carries the status
	// code and, where decodable, the upstream error payload.
	CodeHTTP Code = "HTTP_ERROR"
	// CodeContentType marks a 2xx response whose body is not JSON. The
	// call "succeeded" at the HTTP layer but violated the API contract.
	CodeContentType Code = "UNEXPECTED_CONTENT_TYPE"
	// CodeShape marks a decoded JSON value that does not match the
	// expected envelope: wrong JSON kind, missing required field, wrong
	// field type.
	CodeShape Code = "SHAPE_ERROR"
	// CodeInternal is the catch-all for failures that escaped
	// classification.
	CodeInternal Code = "INTERNAL_ERROR"
)

type Error struct {
	code    Code
	message string
	status  int
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Status returns the upstream HTTP status code, or 0 when the failure
// never reached the HTTP layer.
func (e *Error) Status() int {
	if e == nil {
		return 0
	}
	return e.status
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithStatus(status int) *Error {
	if e == nil {
		return nil
	}
	e.status = status
	return e
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.status != 0 {
		return fmt.Sprintf("[%d] %s: %s", e.status, e.code, e.message)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// Op enriches err with the logical operation being performed, keeping
// the original code, status code, and details intact. Every call site
// applies it exactly once on the way out instead of re-deriving the
// same wrapping by hand.
func Op(operation string, err error) error {
	if err == nil {
		return nil
	}
	if typed := As(err); typed != nil {
		return &Error{
			code:    typed.code,
			message: fmt.Sprintf("%s: %s", operation, typed.message),
			status:  typed.status,
			details: typed.details,
			cause:   err,
		}
	}
	return Wrap(CodeInternal, err, fmt.Sprintf("%s: %s", operation, err.Error()))
}

// IsStatus reports whether err is an *Error carrying the given HTTP
// status code.
func IsStatus(err error, status int) bool {
	typed := As(err)
	return typed != nil && typed.status == status
}
