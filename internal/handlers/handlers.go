// Package handlers adapts the recipes to the platforms that invoke them:
// HTTP and CloudEvent functions on Cloud Functions, and AWS Lambda.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/Lllllllleong/functionrecipes/internal/hello"
	"github.com/Lllllllleong/functionrecipes/internal/models"
	"github.com/Lllllllleong/functionrecipes/internal/recipe"
	"github.com/Lllllllleong/functionrecipes/internal/services"
)

var (
	summarizerInstance *services.SummarizerFunction
	once               sync.Once
	initErr            error

	newSummarizer = services.NewSummarizer
)

// summarizer initializes the shared instance on first use.
func summarizer() (*services.SummarizerFunction, error) {
	once.Do(func() {
		summarizerInstance, initErr = newSummarizer(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical: PDF Summarizer initialization failed", "error", initErr)
	}
	return summarizerInstance, initErr
}

func initFailure() recipe.Response {
	return recipe.NewResponse(http.StatusInternalServerError, map[string]any{
		"error": "failed to initialize service",
	})
}

// SummarizePDF is the HTTP entry point of the PDF summarizer.
func SummarizePDF(w http.ResponseWriter, r *http.Request) {
	recipe.HandlerFunc(func(r *http.Request, event recipe.Event) recipe.Response {
		return summarize(r.Context(), event)
	})(w, r)
}

// summarize rejects events without a file_url before any client is built.
func summarize(ctx context.Context, event recipe.Event) recipe.Response {
	if _, err := services.ValidateEvent(event); err != nil {
		return recipe.ErrorResponse(err)
	}
	fn, err := summarizer()
	if err != nil {
		return initFailure()
	}
	return fn.Handle(ctx, event)
}

// HelloWorld is the HTTP entry point of the greeting recipe.
func HelloWorld(w http.ResponseWriter, r *http.Request) {
	recipe.HandlerFunc(func(r *http.Request, event recipe.Event) recipe.Response {
		return hello.Handle(event)
	})(w, r)
}

// SummarizeUploadedPDF summarizes a PDF uploaded to a Cloud Storage bucket.
// Failures caused by the document itself are logged and acknowledged so the
// platform does not retry them.
func SummarizeUploadedPDF(ctx context.Context, e cloudevents.Event) error {
	fn, err := summarizer()
	if err != nil {
		return err
	}

	var gcsEvent models.GCSEvent
	if err := json.Unmarshal(e.Data(), &gcsEvent); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}
	logCtx := slog.With("gcsBucket", gcsEvent.Bucket, "gcsObject", gcsEvent.Name, "eventId", e.ID())

	event, ok := UploadEvent(gcsEvent)
	if !ok {
		logCtx.Info("Object is not a PDF upload. Skipping.")
		return nil
	}

	if _, err := fn.Process(ctx, event); err != nil {
		if !Retryable(err) {
			logCtx.Warn("Uploaded document cannot be summarized. Not retrying.", "errorKind", recipe.KindOf(err), "error", err)
			return nil
		}
		return err
	}
	return nil
}

// UploadEvent converts a storage notification into a summarizer event. It
// reports false for objects that are not PDFs.
func UploadEvent(e models.GCSEvent) (recipe.Event, bool) {
	if e.Bucket == "" || e.Name == "" || strings.HasSuffix(e.Name, "/") {
		return nil, false
	}
	ext := path.Ext(e.Name)
	if !strings.EqualFold(ext, ".pdf") {
		return nil, false
	}
	return recipe.Event{
		"file_url":          fmt.Sprintf("gs://%s/%s", e.Bucket, e.Name),
		"summary_file_name": strings.TrimSuffix(path.Base(e.Name), ext),
	}, true
}

// Retryable reports whether a failed invocation may succeed if repeated.
func Retryable(err error) bool {
	switch recipe.KindOf(err) {
	case recipe.KindMissingInput, recipe.KindInvalidRequest, recipe.KindNotAPDF,
		recipe.KindTooManyPages, recipe.KindParse:
		return false
	default:
		return true
	}
}

// SummarizeLambda is the AWS Lambda entry point of the PDF summarizer. The
// envelope carries every failure, so the returned error is always nil.
func SummarizeLambda(ctx context.Context, event recipe.Event) (recipe.Response, error) {
	return summarize(ctx, event), nil
}

// HelloLambda is the AWS Lambda entry point of the greeting recipe.
func HelloLambda(ctx context.Context, event recipe.Event) (recipe.Response, error) {
	return hello.Handle(event), nil
}
