package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Status texts carried in the response envelope
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Kind classifies an application error and decides its HTTP code and status text.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindBadRequest         Kind = "bad_request"
	KindConflict           Kind = "conflict"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindNotAnImage         Kind = "not_an_image"
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindTooManyRequests    Kind = "too_many_requests"
	KindInternal           Kind = "internal"
)

type kindInfo struct {
	code   int
	status string
}

var kinds = map[Kind]kindInfo{
	KindValidation:         {http.StatusBadRequest, StatusFail},
	KindBadRequest:         {http.StatusBadRequest, StatusFail},
	KindConflict:           {http.StatusBadRequest, StatusFail},
	KindInvalidCredentials: {http.StatusBadRequest, StatusFail},
	KindNotAnImage:         {http.StatusBadRequest, StatusError},
	KindUnauthenticated:    {http.StatusUnauthorized, StatusError},
	KindForbidden:          {http.StatusForbidden, StatusError},
	KindNotFound:           {http.StatusNotFound, StatusFail},
	KindTooManyRequests:    {http.StatusTooManyRequests, StatusError},
	KindInternal:           {http.StatusInternalServerError, StatusError},
}

// Error is the single error type understood by the HTTP error translator.
// Message is either a string or a list of field validation failures.
type Error struct {
	Kind    Kind
	Code    int
	Status  string
	Message any
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprint(e.Message)
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind.
func New(kind Kind, message any) *Error {
	info, ok := kinds[kind]
	if !ok {
		kind = KindInternal
		info = kinds[KindInternal]
	}
	return &Error{Kind: kind, Code: info.code, Status: info.status, Message: message}
}

// Wrap builds an error of the given kind that keeps cause for logging.
func Wrap(kind Kind, message any, cause error) *Error {
	e := New(kind, message)
	e.Err = cause
	return e
}

func Validation(message any) *Error { return New(KindValidation, message) }
func BadRequest(message string) *Error { return New(KindBadRequest, message) }
func Conflict(message string) *Error { return New(KindConflict, message) }
func NotFound(message string) *Error { return New(KindNotFound, message) }
func Forbidden(message string) *Error { return New(KindForbidden, message) }
func NotAnImage(message string) *Error { return New(KindNotAnImage, message) }
func InvalidCredentials(msg string) *Error { return New(KindInvalidCredentials, msg) }
func Unauthenticated(message string, cause error) *Error {
	return Wrap(KindUnauthenticated, message, cause)
}
func Internal(cause error) *Error {
	return Wrap(KindInternal, "internal server error", cause)
}

// From converts any error into an *Error; unknown errors become internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
