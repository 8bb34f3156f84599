package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so handlers can map it to an HTTP status
// without inspecting message strings.
type Kind int

const (
	ValidationFailed Kind = iota
	NotFound
	InvalidCredentials
	Locked
	Unauthorized
	Forbidden
	Conflict
	Upstream
)

type Error struct {
	Kind    Kind
	Message string

	// RemainingMinutes is set only for Locked errors.
	RemainingMinutes int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Status() int {
	switch e.Kind {
	case ValidationFailed:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case InvalidCredentials, Unauthorized:
		return http.StatusUnauthorized
	case Locked:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewLocked carries the remaining lockout time back to the caller.
func NewLocked(remainingMinutes int) *Error {
	return &Error{
		Kind:             Locked,
		Message:          fmt.Sprintf("account is locked, try again in %d minutes", remainingMinutes),
		RemainingMinutes: remainingMinutes,
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
