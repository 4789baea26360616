// Package openai summarizes text with the OpenAI chat-completion API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/Lllllllleong/functionrecipes/internal/prompts"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-3.5-turbo-0125"

// ErrEmptyCompletion is returned when the API answers without any choice
// or with a first choice that has no text.
var ErrEmptyCompletion = errors.New("chat completion returned no text")

// Config configures a Summarizer.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Summarizer sends one fixed two-message prompt per request.
type Summarizer struct {
	client *goopenai.Client
	model  string
}

// NewSummarizer creates a Summarizer for cfg.
func NewSummarizer(cfg Config) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("NewSummarizer: API key cannot be empty")
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Summarize returns the content of the first completion choice for text.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: s.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: prompts.SummarySystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		slog.Error("Call to OpenAI for summarization failed", "model", s.model, "error", err)
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
