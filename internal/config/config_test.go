package config

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUMMARY_BUCKET", "summaries")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadSummarizerDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadSummarizer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StorageProvider != StorageS3 || cfg.LLMProvider != LLMOpenAI {
		t.Fatalf("unexpected providers: %s/%s", cfg.StorageProvider, cfg.LLMProvider)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo-0125" {
		t.Fatalf("unexpected model: %s", cfg.OpenAIModel)
	}
	if cfg.MaxPages != 10 {
		t.Fatalf("expected 10 max pages, got %d", cfg.MaxPages)
	}
	if cfg.S3PublicDomain != "amazonaws.com" {
		t.Fatalf("unexpected public domain: %s", cfg.S3PublicDomain)
	}
	if cfg.FetchTimeout != time.Minute {
		t.Fatalf("unexpected fetch timeout: %s", cfg.FetchTimeout)
	}
}

func TestLoadSummarizerOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_PROVIDER", "gcs")
	t.Setenv("LLM_PROVIDER", "vertex")
	t.Setenv("PROJECT_ID", "demo")
	t.Setenv("MAX_PAGES", "3")
	t.Setenv("FETCH_TIMEOUT", "5s")

	cfg, err := LoadSummarizer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StorageProvider != StorageGCS || cfg.LLMProvider != LLMVertex {
		t.Fatalf("unexpected providers: %s/%s", cfg.StorageProvider, cfg.LLMProvider)
	}
	if cfg.MaxPages != 3 || cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadSummarizerErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing bucket", map[string]string{"SUMMARY_BUCKET": ""}, "SUMMARY_BUCKET"},
		{"missing openai key", map[string]string{"OPENAI_API_KEY": ""}, "OPENAI_API_KEY"},
		{"vertex without project", map[string]string{"LLM_PROVIDER": "vertex"}, "PROJECT_ID"},
		{"unknown storage", map[string]string{"STORAGE_PROVIDER": "azure"}, "STORAGE_PROVIDER"},
		{"half credentials", map[string]string{"AWS_ACCESS_KEY_ID": "AKIA"}, "AWS_SECRET_ACCESS_KEY"},
		{"bad max pages", map[string]string{"MAX_PAGES": "ten"}, "MAX_PAGES"},
		{"zero max pages", map[string]string{"MAX_PAGES": "0"}, "MAX_PAGES"},
		{"records without project", map[string]string{"SUMMARY_RECORDS_COLLECTION": "summaries"}, "PROJECT_ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv("PROJECT_ID", "")
			t.Setenv("AWS_ACCESS_KEY_ID", "")
			t.Setenv("AWS_SECRET_ACCESS_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadSummarizer()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("RECIPE_TEST_VALUE", "set")
	if got := GetEnv("RECIPE_TEST_VALUE", "fallback"); got != "set" {
		t.Fatalf("expected set, got %s", got)
	}
	if got := GetEnv("RECIPE_TEST_UNSET_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %s", got)
	}
}
