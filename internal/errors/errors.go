package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is the single failure type handed from repositories and services to handlers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// InvalidRangeError is returned when a range token is neither a 4-digit year nor a known period.
type InvalidRangeError struct {
	Token string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("Invalid range: %s", e.Token)
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "Forbidden"}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func MethodNotAllowed() *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: "Method Not Allowed"}
}

// Upstream wraps a failure of the remote store. The message is for logs only.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err, looking through wrapping.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	var valErr *ErrValidation
	if stderrors.As(err, &valErr) {
		return KindValidation
	}
	var rangeErr *InvalidRangeError
	if stderrors.As(err, &rangeErr) {
		return KindValidation
	}
	return KindInternal
}

// StatusCode maps a kind to its HTTP status.
func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text that may be shown to a client.
// Upstream and internal failures never leak their detail.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindUpstream, KindInternal:
		return "Internal Server Error"
	}
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
