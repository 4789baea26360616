package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/storage"

	"github.com/Lllllllleong/functionrecipes/internal/aws"
	"github.com/Lllllllleong/functionrecipes/internal/config"
	"github.com/Lllllllleong/functionrecipes/internal/gcp"
	"github.com/Lllllllleong/functionrecipes/internal/models"
	"github.com/Lllllllleong/functionrecipes/internal/openai"
	"github.com/Lllllllleong/functionrecipes/internal/pdf"
	"github.com/Lllllllleong/functionrecipes/internal/recipe"
)

// Messages returned verbatim to callers.
const (
	MsgFileURLRequired = "file_url is required"
	MsgNotAPDF         = "The file is not a PDF"
)

// Fetcher downloads the file named by a URL into memory.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TextExtractor pulls the text out of a PDF held in memory.
type TextExtractor interface {
	Extract(data []byte) (*pdf.Document, error)
}

// TextSummarizer asks a language model for a summary of text.
type TextSummarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ObjectStore stores a text object and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, content string) (string, error)
}

// Recorder persists a ledger entry per invocation.
type Recorder interface {
	Record(ctx context.Context, rec models.SummaryRecord) (string, error)
}

// SummarizerDeps are the collaborators of a SummarizerFunction. Recorder is optional.
type SummarizerDeps struct {
	Fetcher    Fetcher
	Extractor  TextExtractor
	Summarizer TextSummarizer
	Store      ObjectStore
	Recorder   Recorder
}

// SummarizerFunction downloads a PDF, summarizes its text and stores the summary.
type SummarizerFunction struct {
	deps    SummarizerDeps
	closers []func() error
}

// SummaryResult describes a stored summary.
type SummaryResult struct {
	SummaryKey string
	SummaryURL string
	PageCount  int
}

// NewSummarizer loads the configuration from the environment and builds every client.
func NewSummarizer(ctx context.Context) (*SummarizerFunction, error) {
	cfg, err := config.LoadSummarizer()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewSummarizerFromConfig(ctx, cfg)
}

// NewSummarizerFromConfig builds the clients selected by cfg.
func NewSummarizerFromConfig(ctx context.Context, cfg *config.Summarizer) (_ *SummarizerFunction, err error) {
	f := &SummarizerFunction{}
	defer func() { f.closeOnError(err) }()

	// The GCS client backs gs:// sources and the gcs store. Deployments
	// outside Google Cloud may have no credentials for it.
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		if cfg.StorageProvider == config.StorageGCS {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		slog.Warn("Cloud Storage client unavailable, gs:// sources disabled.", "error", err)
		storageClient = nil
	} else {
		f.closers = append(f.closers, storageClient.Close)
	}

	var objects ObjectReader
	if storageClient != nil {
		objects = gcp.NewGCSReader(storageClient)
	}
	f.deps.Fetcher = NewURLFetcher(&http.Client{Timeout: cfg.FetchTimeout}, cfg.MaxPDFBytes, objects)
	f.deps.Extractor = pdf.NewExtractor(cfg.MaxPages)

	switch cfg.StorageProvider {
	case config.StorageGCS:
		store, err := gcp.NewGCSStore(storageClient, cfg.Bucket)
		if err != nil {
			return nil, err
		}
		f.deps.Store = store
	default:
		store, err := aws.NewS3Store(ctx, aws.S3Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
			PublicDomain:    cfg.S3PublicDomain,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 store: %w", err)
		}
		f.deps.Store = store
	}

	switch cfg.LLMProvider {
	case config.LLMVertex:
		vertexClient, err := gcp.NewVertexClient(ctx, cfg.ProjectID, cfg.VertexAIRegion, cfg.VertexModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create vertex client: %w", err)
		}
		f.closers = append(f.closers, vertexClient.Close)
		f.deps.Summarizer = vertexClient
	default:
		summarizer, err := openai.NewSummarizer(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		f.deps.Summarizer = summarizer
	}

	if cfg.RecordsCollection != "" {
		firestoreClient, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID)
		if err != nil {
			return nil, err
		}
		f.closers = append(f.closers, firestoreClient.Close)
		f.deps.Recorder = gcp.NewSummaryRecorder(firestoreClient, cfg.RecordsCollection)
	}

	slog.Info("PDF Summarizer initialized.",
		"storageProvider", cfg.StorageProvider,
		"llmProvider", cfg.LLMProvider,
		"bucket", cfg.Bucket,
		"maxPages", cfg.MaxPages,
		"recording", f.deps.Recorder != nil,
	)
	return f, nil
}

// NewSummarizerWithDeps wires a SummarizerFunction from explicit collaborators.
func NewSummarizerWithDeps(deps SummarizerDeps) *SummarizerFunction {
	return &SummarizerFunction{deps: deps}
}

// Close releases the clients created by NewSummarizerFromConfig.
func (f *SummarizerFunction) Close() error {
	var errs []error
	for _, c := range f.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// closeOnError releases the clients opened so far when initialization failed.
func (f *SummarizerFunction) closeOnError(err error) {
	if err == nil {
		return
	}
	if closeErr := f.Close(); closeErr != nil {
		slog.Warn("Failed to close clients after initialization error", "error", closeErr)
	}
}

// Handle runs the pipeline and converts its outcome into a response envelope.
func (f *SummarizerFunction) Handle(ctx context.Context, event recipe.Event) recipe.Response {
	result, err := f.Process(ctx, event)
	if err != nil {
		return recipe.ErrorResponse(err)
	}
	return recipe.OK(map[string]any{"summary_url": result.SummaryURL})
}

// ValidateEvent returns the file_url of event, or a missing_input error when
// it is absent. It touches no client.
func ValidateEvent(event recipe.Event) (string, error) {
	fileURL, _ := event.String("file_url")
	if fileURL == "" {
		return "", recipe.NewError(recipe.KindMissingInput, MsgFileURLRequired, nil)
	}
	return fileURL, nil
}

// Process validates the event, then fetches, checks, extracts, summarizes
// and stores. Every error it returns is a *recipe.Error.
func (f *SummarizerFunction) Process(ctx context.Context, event recipe.Event) (*SummaryResult, error) {
	fileURL, err := ValidateEvent(event)
	if err != nil {
		return nil, err
	}

	requested, _ := event.String("summary_file_name")
	key, err := SummaryObjectName(requested)
	if err != nil {
		return nil, recipe.NewError(recipe.KindInternal, "", err)
	}

	logCtx := slog.With("fileUrl", fileURL, "summaryKey", key)
	logCtx.Info("Starting summarization.")

	result, err := f.run(ctx, logCtx, fileURL, key)
	f.record(ctx, logCtx, fileURL, key, result, err)
	if err != nil {
		logCtx.Warn("Summarization failed.", "errorKind", recipe.KindOf(err), "error", err)
		return nil, err
	}
	logCtx.Info("Summarization complete.", "summaryUrl", result.SummaryURL, "pageCount", result.PageCount)
	return result, nil
}

func (f *SummarizerFunction) run(ctx context.Context, logCtx *slog.Logger, fileURL, key string) (*SummaryResult, error) {
	data, err := f.deps.Fetcher.Fetch(ctx, fileURL)
	if err != nil {
		return nil, recipe.NewError(recipe.KindFetch, "failed to download file", err)
	}
	logCtx.Debug("File downloaded.", "bytes", len(data))

	if !pdf.IsPDF(data) {
		return nil, recipe.NewError(recipe.KindNotAPDF, MsgNotAPDF, nil)
	}

	doc, err := f.deps.Extractor.Extract(data)
	if err != nil {
		var tooMany *pdf.TooManyPagesError
		if errors.As(err, &tooMany) {
			return nil, recipe.NewError(recipe.KindTooManyPages, "", err)
		}
		return nil, recipe.NewError(recipe.KindParse, "failed to extract text", err)
	}
	logCtx.Debug("Text extracted.", "pageCount", doc.PageCount, "chars", len(doc.Text))

	summary, err := f.deps.Summarizer.Summarize(ctx, doc.Text)
	if err != nil {
		return nil, recipe.NewError(recipe.KindSummarize, "failed to summarize text", err)
	}

	summaryURL, err := f.deps.Store.Put(ctx, key, summary)
	if err != nil {
		return nil, recipe.NewError(recipe.KindStore, "failed to store summary", err)
	}

	return &SummaryResult{SummaryKey: key, SummaryURL: summaryURL, PageCount: doc.PageCount}, nil
}

// record writes the ledger entry. Failures are logged and never change the outcome.
func (f *SummarizerFunction) record(ctx context.Context, logCtx *slog.Logger, fileURL, key string, result *SummaryResult, runErr error) {
	if f.deps.Recorder == nil {
		return
	}
	rec := models.SummaryRecord{
		FileURL:    fileURL,
		SummaryKey: key,
		Status:     models.StatusSucceeded,
		CreatedAt:  time.Now().UTC(),
	}
	if result != nil {
		rec.SummaryURL = result.SummaryURL
		rec.PageCount = result.PageCount
	}
	if runErr != nil {
		rec.Status = models.StatusFailed
		rec.ErrorKind = string(recipe.KindOf(runErr))
		rec.ErrorDetails = runErr.Error()
	}
	id, err := f.deps.Recorder.Record(ctx, rec)
	if err != nil {
		logCtx.Error("Failed to record summary", "error", err)
		return
	}
	logCtx.Debug("Summary recorded.", "recordId", id)
}
