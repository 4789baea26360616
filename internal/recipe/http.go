package recipe

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// maxEventBytes bounds the JSON request body accepted by DecodeEvent.
const maxEventBytes = 1 << 20

// DecodeEvent builds an Event from an HTTP request. A JSON object body is
// used as-is; query parameters fill keys the body does not set. An empty
// body yields an empty Event.
func DecodeEvent(r *http.Request) (Event, error) {
	event := Event{}

	if r.Body != nil {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
		if err != nil {
			return nil, NewError(KindInvalidRequest, "could not read request body", err)
		}
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &event); err != nil {
				return nil, NewError(KindInvalidRequest, "invalid JSON body", nil)
			}
			if event == nil {
				event = Event{}
			}
		}
	}

	for key, values := range r.URL.Query() {
		if _, set := event[key]; set || len(values) == 0 {
			continue
		}
		event[key] = values[0]
	}
	return event, nil
}

// WriteResponse writes the envelope as an HTTP response: its status code,
// its headers and its body encoded as JSON.
func WriteResponse(w http.ResponseWriter, resp Response) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", ContentTypeJSON)
	}
	w.WriteHeader(resp.StatusCode)
	if err := json.NewEncoder(w).Encode(resp.Body); err != nil {
		slog.Error("Failed to write response", "error", err, "statusCode", resp.StatusCode)
	}
}

// HandlerFunc adapts a recipe to an http.HandlerFunc.
func HandlerFunc(handle func(r *http.Request, event Event) Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := DecodeEvent(r)
		if err != nil {
			slog.Warn("Could not decode request", "error", err)
			WriteResponse(w, ErrorResponse(err))
			return
		}
		WriteResponse(w, handle(r, event))
	}
}
