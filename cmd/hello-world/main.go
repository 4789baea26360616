package main

import (
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/Lllllllleong/functionrecipes/internal/config"
	"github.com/Lllllllleong/functionrecipes/internal/handlers"
	"github.com/Lllllllleong/functionrecipes/internal/logging"
)

func init() {
	logging.Init(config.GetEnv("LOG_LEVEL", "info"))
	functions.HTTP("HelloWorld", handlers.HelloWorld)
}

// main is required by the Go Functions Framework.
func main() {}
