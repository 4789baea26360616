// Package config loads the immutable configuration recipes are built with.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StorageS3  = "s3"
	StorageGCS = "gcs"

	LLMOpenAI = "openai"
	LLMVertex = "vertex"
)

// Summarizer holds everything the PDF summarizer needs. It is loaded once per
// process and treated as read-only afterwards.
type Summarizer struct {
	StorageProvider string
	Bucket          string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Endpoint         string
	S3PublicDomain     string

	LLMProvider   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	ProjectID      string
	VertexAIRegion string
	VertexModel    string

	MaxPages     int
	MaxPDFBytes  int64
	FetchTimeout time.Duration

	RecordsCollection string
}

// LoadSummarizer reads the summarizer configuration from the environment.
func LoadSummarizer() (*Summarizer, error) {
	maxPages, err := GetEnvInt("MAX_PAGES", 10)
	if err != nil {
		return nil, err
	}
	maxBytes, err := GetEnvInt64("MAX_PDF_BYTES", 50*1024*1024)
	if err != nil {
		return nil, err
	}
	timeout, err := GetEnvDuration("FETCH_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Summarizer{
		StorageProvider:    GetEnv("STORAGE_PROVIDER", StorageS3),
		Bucket:             GetEnv("SUMMARY_BUCKET", ""),
		AWSRegion:          GetEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     GetEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: GetEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3Endpoint:         GetEnv("S3_ENDPOINT", ""),
		S3PublicDomain:     GetEnv("S3_PUBLIC_DOMAIN", "amazonaws.com"),
		LLMProvider:        GetEnv("LLM_PROVIDER", LLMOpenAI),
		OpenAIAPIKey:       GetEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      GetEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:        GetEnv("OPENAI_MODEL", "gpt-3.5-turbo-0125"),
		ProjectID:          GetEnv("PROJECT_ID", ""),
		VertexAIRegion:     GetEnv("VERTEX_AI_REGION", "us-central1"),
		VertexModel:        GetEnv("VERTEX_MODEL", "gemini-1.5-pro"),
		MaxPages:           maxPages,
		MaxPDFBytes:        maxBytes,
		FetchTimeout:       timeout,
		RecordsCollection:  GetEnv("SUMMARY_RECORDS_COLLECTION", ""),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the provider selections have what they need.
func (c *Summarizer) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("SUMMARY_BUCKET environment variable must be set")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("MAX_PAGES must be positive, got %d", c.MaxPages)
	}
	if c.MaxPDFBytes <= 0 {
		return fmt.Errorf("MAX_PDF_BYTES must be positive, got %d", c.MaxPDFBytes)
	}

	switch c.StorageProvider {
	case StorageS3:
		if (c.AWSAccessKeyID == "") != (c.AWSSecretAccessKey == "") {
			return fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together")
		}
	case StorageGCS:
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider)
	}

	switch c.LLMProvider {
	case LLMOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable must be set")
		}
	case LLMVertex:
		if c.ProjectID == "" {
			return fmt.Errorf("PROJECT_ID environment variable must be set for the vertex provider")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.RecordsCollection != "" && c.ProjectID == "" {
		return fmt.Errorf("PROJECT_ID environment variable must be set when SUMMARY_RECORDS_COLLECTION is set")
	}
	return nil
}

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func GetEnvInt64(key string, fallback int64) (int64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func GetEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
