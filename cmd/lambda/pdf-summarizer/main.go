package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/Lllllllleong/functionrecipes/internal/config"
	"github.com/Lllllllleong/functionrecipes/internal/handlers"
	"github.com/Lllllllleong/functionrecipes/internal/logging"
)

func main() {
	logging.Init(config.GetEnv("LOG_LEVEL", "info"))
	awslambda.Start(handlers.SummarizeLambda)
}
