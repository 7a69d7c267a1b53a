// Health Check Lambda entry point
package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"scheme-recommendation-engine/internal/handlers"
	"scheme-recommendation-engine/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger(os.Getenv("LOG_LEVEL"), os.Getenv("STAGE"))
	defer utils.Sync()

	// Start Lambda
	lambda.Start(handlers.NewHealthHandler().Handle)
}
