package recipe

import (
	"errors"
	"net/http"
)

// ErrorKind classifies why an invocation failed.
type ErrorKind string

const (
	KindMissingInput   ErrorKind = "missing_input"
	KindNotAPDF        ErrorKind = "not_a_pdf"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindFetch          ErrorKind = "fetch"
	KindParse          ErrorKind = "parse"
	KindTooManyPages   ErrorKind = "too_many_pages"
	KindSummarize      ErrorKind = "summarize"
	KindStore          ErrorKind = "store"
	KindInternal       ErrorKind = "internal"
)

// StatusCode returns the HTTP status reported for the kind.
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindMissingInput, KindNotAPDF, KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified recipe failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		if e.Message == "" {
			return e.Cause.Error()
		}
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf reports the kind of err, or KindInternal when err is not classified.
func KindOf(err error) ErrorKind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return KindInternal
}

// StatusCode returns the HTTP status for err.
func StatusCode(err error) int {
	return KindOf(err).StatusCode()
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return StatusCode(err) < http.StatusInternalServerError
}
