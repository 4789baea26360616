package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lllllllleong/functionrecipes/internal/prompts"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestServer(t *testing.T, reply string, got *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSummarize(t *testing.T) {
	var req chatRequest
	srv := newTestServer(t, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"A greeting."},"finish_reason":"stop"},{"index":1,"message":{"role":"assistant","content":"ignored"}}]}`, &req)

	s, err := NewSummarizer(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("new summarizer: %v", err)
	}
	summary, err := s.Summarize(context.Background(), "Hello world")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary != "A greeting." {
		t.Fatalf("unexpected summary %q", summary)
	}

	if req.Model != DefaultModel {
		t.Fatalf("unexpected model %q", req.Model)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" || req.Messages[0].Content != prompts.SummarySystemPrompt {
		t.Fatalf("unexpected system turn: %+v", req.Messages[0])
	}
	if req.Messages[1].Role != "user" || req.Messages[1].Content != "Hello world" {
		t.Fatalf("unexpected user turn: %+v", req.Messages[1])
	}
}

func TestSummarizeNoChoices(t *testing.T) {
	var req chatRequest
	srv := newTestServer(t, `{"id":"1","object":"chat.completion","choices":[]}`, &req)

	s, _ := NewSummarizer(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"})
	_, err := s.Summarize(context.Background(), "text")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
	if req.Model != "gpt-4o-mini" {
		t.Fatalf("configured model not used: %q", req.Model)
	}
}

func TestSummarizeBlankContent(t *testing.T) {
	for _, content := range []string{`""`, `"  \n"`} {
		var req chatRequest
		srv := newTestServer(t, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":`+content+`}}]}`, &req)

		s, _ := NewSummarizer(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
		summary, err := s.Summarize(context.Background(), "text")
		if !errors.Is(err, ErrEmptyCompletion) {
			t.Fatalf("content %s: expected ErrEmptyCompletion, got summary=%q err=%v", content, summary, err)
		}
	}
}

func TestSummarizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	s, _ := NewSummarizer(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	if _, err := s.Summarize(context.Background(), "text"); err == nil {
		t.Fatalf("expected an error for a 401 response")
	}
}

func TestNewSummarizerRequiresKey(t *testing.T) {
	if _, err := NewSummarizer(Config{}); err == nil {
		t.Fatalf("expected error for missing API key")
	}
}
