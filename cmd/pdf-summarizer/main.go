package main

import (
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/Lllllllleong/functionrecipes/internal/config"
	"github.com/Lllllllleong/functionrecipes/internal/handlers"
	"github.com/Lllllllleong/functionrecipes/internal/logging"
)

func init() {
	logging.Init(config.GetEnv("LOG_LEVEL", "info"))

	// Register the entry points with the framework. The names are the
	// entry points configured in GCP.
	functions.HTTP("SummarizePDF", handlers.SummarizePDF)
	functions.CloudEvent("SummarizeUploadedPDF", handlers.SummarizeUploadedPDF)
}

// main is required by the Go Functions Framework.
func main() {}
