package hello

import (
	"net/http"
	"testing"

	"github.com/Lllllllleong/functionrecipes/internal/recipe"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name  string
		event recipe.Event
		want  string
	}{
		{"default name", recipe.Event{}, "Hello satoshi!"},
		{"nil event", nil, "Hello satoshi!"},
		{"given name", recipe.Event{"name": "Ada"}, "Hello Ada!"},
		{"empty name is kept", recipe.Event{"name": ""}, "Hello !"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Handle(tt.event)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}
			if resp.Headers["Content-Type"] != "application/json" {
				t.Fatalf("expected JSON content type, got %v", resp.Headers)
			}
			if got := resp.Body["greetings"]; got != tt.want {
				t.Fatalf("greetings = %v, want %q", got, tt.want)
			}
		})
	}
}
