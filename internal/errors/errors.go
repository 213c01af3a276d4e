// Package errors provides the coded error taxonomy shared by the storefront client stores.
//
// Usage:
//
//	// In the client - return typed errors
//	if resp.StatusCode >= 400 {
//	    return errors.Transport(resp.StatusCode, serverMessage)
//	}
//
//	// In stores - check with errors.Is
//	if errors.Is(err, errors.ErrPolicy) {
//	    // no request was sent
//	}
//
//	// Or switch on the code
//	var coded *errors.Error
//	if errors.As(err, &coded) {
//	    switch coded.Code {
//	    case errors.CodeValidation:
//	        showInline(coded.Details)
//	    case errors.CodeAuthentication:
//	        showBanner(coded.Message)
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the client.
const (
	// CodeValidation is a required-field or shape error caught before any request.
	CodeValidation Code = "VALIDATION"
	// CodeTransport covers unreachable servers and non-2xx responses.
	CodeTransport Code = "TRANSPORT"
	// CodePolicy is a local domain rule violation, raised without a round-trip.
	CodePolicy Code = "POLICY"
	// CodeAuthentication is a rejected login or registration.
	CodeAuthentication Code = "AUTHENTICATION"
	// CodeInvalidResponse is a 2xx response whose payload has the wrong shape.
	CodeInvalidResponse Code = "INVALID_RESPONSE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
)

// HTTPStatus returns the status the local console uses when reporting an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAuthentication:
		return http.StatusUnauthorized
	case CodePolicy:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTransport, CodeInvalidResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a coded error with a user-facing message and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	// Status is the upstream HTTP status for transport errors; 0 when the server was unreachable.
	Status  int   `json:"status,omitempty"`
	Details any   `json:"details,omitempty"`
	cause   error // unexported, for wrapping
	// fromServer marks Message as text the upstream server sent.
	fromServer bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Details: details,
		cause:   e.cause,

		fromServer: e.fromServer,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Details: e.Details,
		cause:   err,

		fromServer: e.fromServer,
	}
}

// WithMessage returns a copy carrying a different user-facing message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Status:  e.Status,
		Details: e.Details,
		cause:   e.cause,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrValidation      = &Error{Code: CodeValidation, Message: "validation error"}
	ErrTransport       = &Error{Code: CodeTransport, Message: "transport error"}
	ErrPolicy          = &Error{Code: CodePolicy, Message: "policy violation"}
	ErrAuthentication  = &Error{Code: CodeAuthentication, Message: "authentication failed"}
	ErrInvalidResponse = &Error{Code: CodeInvalidResponse, Message: "invalid response"}
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInternal        = &Error{Code: CodeInternal, Message: "internal error"}
)

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Localized fallbacks for transport errors that carry no server text.
const (
	TransportFallbackMessage = "خطا در ارتباط با سرور. لطفاً دوباره تلاش کنید."
	UnreachableMessage       = "سرور در دسترس نیست. اتصال خود را بررسی کنید."
)

// Transport creates a transport error for the given upstream status.
// An empty msg means the server sent none; the generic fallback is used instead.
func Transport(status int, msg string) *Error {
	if msg == "" {
		return &Error{Code: CodeTransport, Status: status, Message: TransportFallbackMessage}
	}
	return &Error{Code: CodeTransport, Status: status, Message: msg, fromServer: true}
}

// Unreachable creates a transport error for a request that never got a response.
func Unreachable(err error) *Error {
	return &Error{Code: CodeTransport, Message: UnreachableMessage, cause: err}
}

// Policy creates a domain-policy error.
func Policy(msg string) *Error {
	return &Error{Code: CodePolicy, Message: msg}
}

// Policyf creates a domain-policy error with formatted message.
func Policyf(format string, args ...any) *Error {
	return &Error{Code: CodePolicy, Message: fmt.Sprintf(format, args...)}
}

// Authentication creates an authentication error.
func Authentication(msg string) *Error {
	return &Error{Code: CodeAuthentication, Message: msg}
}

// InvalidResponse creates an invalid response error.
func InvalidResponse(msg string) *Error {
	return &Error{Code: CodeInvalidResponse, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	wrapped := &Error{Code: code, Message: msg, cause: err}
	var coded *Error
	if errors.As(err, &coded) && coded.Code == code {
		wrapped.Status = coded.Status
	}
	return wrapped
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// ServerMessage returns the message a transport error carried from the server, if any.
func ServerMessage(err error) (string, bool) {
	var coded *Error
	if errors.As(err, &coded) && coded.Code == CodeTransport && coded.fromServer {
		return coded.Message, true
	}
	return "", false
}

// StatusOf returns the upstream HTTP status of a transport error; 0 when the
// server was unreachable. ok is false for any other error.
func StatusOf(err error) (status int, ok bool) {
	var coded *Error
	if errors.As(err, &coded) && coded.Code == CodeTransport {
		return coded.Status, true
	}
	return 0, false
}

// Message returns the user-facing message for err without wrapped causes.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Message
	}
	return err.Error()
}
