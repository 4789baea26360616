// Package recipe defines the invocation contract shared by every recipe:
// an Event mapping in, a Response envelope out.
package recipe

import (
	"fmt"
	"net/http"
)

// Content types shared by the recipes.
const (
	// ContentTypeJSON is carried by every recipe response.
	ContentTypeJSON = "application/json"
	// ContentTypeText is set on every stored summary.
	ContentTypeText = "text/plain; charset=utf-8"
)

// Event is the input mapping passed to a recipe invocation.
type Event map[string]any

// String returns the value stored under key when it is a string.
func (e Event) String(key string) (string, bool) {
	v, ok := e[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the value under key, or fallback when the key is absent.
// Non-string values are formatted with fmt.Sprint.
func (e Event) StringOr(key, fallback string) string {
	v, ok := e[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Response is the envelope every recipe must return.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       map[string]any    `json:"body"`
}

// JSONHeaders returns a fresh header map with the JSON content type set.
func JSONHeaders() map[string]string {
	return map[string]string{"Content-Type": ContentTypeJSON}
}

// NewResponse builds an envelope with JSON headers.
func NewResponse(statusCode int, body map[string]any) Response {
	if body == nil {
		body = map[string]any{}
	}
	return Response{
		StatusCode: statusCode,
		Headers:    JSONHeaders(),
		Body:       body,
	}
}

// OK wraps body in a 200 envelope.
func OK(body map[string]any) Response {
	return NewResponse(http.StatusOK, body)
}

// ErrorResponse converts err into an envelope whose body is {"error": msg}.
// The status code comes from the error kind; unknown errors map to 500.
func ErrorResponse(err error) Response {
	return NewResponse(StatusCode(err), map[string]any{"error": err.Error()})
}
