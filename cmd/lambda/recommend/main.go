// Recommendation Lambda entry point
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"scheme-recommendation-engine/internal/handlers"
	"scheme-recommendation-engine/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger(os.Getenv("LOG_LEVEL"), os.Getenv("STAGE"))
	defer utils.Sync()

	// Create handler (loads the dataset once per cold start)
	handler, err := handlers.NewRecommendHandler(context.Background())
	if err != nil {
		panic("Failed to create handler: " + err.Error())
	}

	// Start Lambda
	lambda.Start(handler.Handle)
}
