// Command local serves a recipe for development. FUNCTION_TARGET selects it.
//
//	FUNCTION_TARGET=SummarizePDF go run ./cmd/local
//
// Variables from a .env file in the working directory are loaded first.
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/joho/godotenv"

	"github.com/Lllllllleong/functionrecipes/internal/config"
	"github.com/Lllllllleong/functionrecipes/internal/handlers"
	"github.com/Lllllllleong/functionrecipes/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load .env file", "error", err)
		os.Exit(1)
	}
	logging.Init(config.GetEnv("LOG_LEVEL", "debug"))

	functions.HTTP("SummarizePDF", handlers.SummarizePDF)
	functions.HTTP("HelloWorld", handlers.HelloWorld)
	functions.CloudEvent("SummarizeUploadedPDF", handlers.SummarizeUploadedPDF)

	port := config.GetEnv("PORT", "8080")
	slog.Info("Serving recipes locally.", "port", port, "target", config.GetEnv("FUNCTION_TARGET", ""))
	if err := funcframework.Start(port); err != nil {
		slog.Error("funcframework.Start failed", "error", err)
		os.Exit(1)
	}
}
