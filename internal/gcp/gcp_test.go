package gcp

import (
	"testing"

	"cloud.google.com/go/vertexai/genai"
)

func TestParseGCSURI(t *testing.T) {
	tests := []struct {
		uri     string
		bucket  string
		object  string
		wantErr bool
	}{
		{uri: "gs://uploads/reports/q3.pdf", bucket: "uploads", object: "reports/q3.pdf"},
		{uri: "gs://uploads/a.pdf", bucket: "uploads", object: "a.pdf"},
		{uri: "gs://uploads", wantErr: true},
		{uri: "gs://uploads/", wantErr: true},
		{uri: "gs:///a.pdf", wantErr: true},
		{uri: "https://example.com/a.pdf", wantErr: true},
	}
	for _, tt := range tests {
		bucket, object, err := ParseGCSURI(tt.uri)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseGCSURI(%q): expected error", tt.uri)
			}
			continue
		}
		if err != nil || bucket != tt.bucket || object != tt.object {
			t.Errorf("ParseGCSURI(%q) = %q, %q, %v", tt.uri, bucket, object, err)
		}
	}
}

func TestPublicURL(t *testing.T) {
	if got := PublicURL("summaries", "report-0a1b2c3d.txt"); got != "https://storage.googleapis.com/summaries/report-0a1b2c3d.txt" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("  A short "), genai.Text("summary. ")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("second candidate")}}},
		},
	}
	if got := candidateText(resp); got != "A short summary." {
		t.Fatalf("unexpected text: %q", got)
	}

	empty := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
	}
	for i, r := range empty {
		if got := candidateText(r); got != "" {
			t.Errorf("case %d: expected empty text, got %q", i, got)
		}
	}
}
