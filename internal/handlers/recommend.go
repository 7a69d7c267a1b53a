// Package handlers provides Lambda handlers for the scheme recommendation engine.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	appConfig "scheme-recommendation-engine/internal/config"
	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/services/dataset"
	"scheme-recommendation-engine/internal/services/recommender"
	s3service "scheme-recommendation-engine/internal/services/s3"
)

// RecommendHandler serves recommendation requests from Lambda. The
// dataset is loaded once at cold start and reused across invocations.
type RecommendHandler struct {
	data *dataset.Store
	svc  *recommender.Service
}

// NewRecommendHandler loads the dataset and builds the pipeline service.
func NewRecommendHandler(ctx context.Context) (*RecommendHandler, error) {
	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var source dataset.Source
	if cfg.UseS3() {
		s3Svc, err := s3service.NewService(ctx, cfg.S3Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 service: %w", err)
		}
		source = dataset.NewS3Source(s3Svc, cfg.S3Key)
	} else {
		source = dataset.NewFileSource(cfg.DataFile)
	}

	store := dataset.NewStore(source, nil)
	if _, err := store.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	return &RecommendHandler{
		data: store,
		svc:  recommender.NewService(store),
	}, nil
}

// Handle processes one APIGateway recommendation request.
func (h *RecommendHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req models.RecommendRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request body"), nil
	}
	if req.Limit == 0 {
		req.Limit = appConfig.DefaultLimit
	}

	result, err := h.svc.Recommend(ctx, req.Profile, req.Query, req.Limit)
	if err != nil {
		if errors.Is(err, models.ErrInvalidLimit) {
			return errorResponse(http.StatusBadRequest, err.Error()), nil
		}
		return errorResponse(http.StatusInternalServerError, "recommendation failed"), nil
	}

	body, _ := json.Marshal(result)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    jsonHeaders(),
		Body:       string(body),
	}, nil
}

func jsonHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin": "*",
		"Content-Type":                "application/json",
	}
}

func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    jsonHeaders(),
		Body:       string(body),
	}
}
