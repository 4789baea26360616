package gcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/Lllllllleong/functionrecipes/internal/prompts"
)

// DefaultVertexModel is the Gemini model used when none is configured.
const DefaultVertexModel = "gemini-1.5-pro"

// ErrEmptyResponse is returned when the model produces no text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// VertexClient holds the pre-configured summarizer model.
type VertexClient struct {
	SummarizerModel *genai.GenerativeModel
	baseClient      *genai.Client
}

// NewVertexClient creates a client whose model carries the summary system instruction.
func NewVertexClient(ctx context.Context, projectID, region, modelName string) (*VertexClient, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}
	if modelName == "" {
		modelName = DefaultVertexModel
	}

	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := baseClient.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompts.SummarySystemPrompt)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr[float32](0.2),
	}

	return &VertexClient{
		SummarizerModel: model,
		baseClient:      baseClient,
	}, nil
}

// Summarize sends text as the user turn and returns the first candidate's text.
func (c *VertexClient) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := c.SummarizerModel.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		slog.Error("Call to Vertex AI for summarization failed", "error", err)
		return "", fmt.Errorf("failed to generate summary from gemini: %w", err)
	}
	summary := candidateText(resp)
	if summary == "" {
		return "", ErrEmptyResponse
	}
	return summary, nil
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(out.String())
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}
