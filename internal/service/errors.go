package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/metrics"
)

// Kind classifies service failures for the transport layer.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindValidation Kind = "VALIDATION"
	KindConflict   Kind = "CONFLICT"
	KindInternal   Kind = "INTERNAL"
)

// HTTPStatus returns the status code reported for the kind. Conflicts are
// reported as 400.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is returned by every service operation that fails.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound   = &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: "not found"}
	ErrValidation = &Error{Kind: KindValidation, Code: "VALIDATION_FAILED", Message: "validation failed"}
	ErrConflict   = &Error{Kind: KindConflict, Code: "CONFLICT", Message: "conflict"}
	ErrInternal   = &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "internal error"}
)

func notFound(code, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func conflict(code, message string, cause error) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message, cause: cause}
}

func internal(code, message string, cause error) *Error {
	return &Error{Kind: KindInternal, Code: code, Message: message, cause: cause}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func logFailure(log zerolog.Logger, e *Error) *Error {
	metrics.IncServiceError(string(e.Kind))
	log.Error().Err(e.cause).Str("code", e.Code).Msg(e.Message)
	return e
}
