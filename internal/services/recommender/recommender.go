package recommender

import (
	"context"
	"time"

	"go.uber.org/zap"

	"scheme-recommendation-engine/internal/config"
	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/services/dataset"
	"scheme-recommendation-engine/internal/utils"
)

// Service runs the recommendation pipeline against the shared dataset.
type Service struct {
	data     *dataset.Store
	weights  Weights
	maxLimit int
}

// Result contains one recommendation call's output and stage counts.
type Result struct {
	Records        []models.ScoredRecord `json:"records"`
	TotalRecords   int                   `json:"total_records"`
	Matched        int                   `json:"matched"`
	Returned       int                   `json:"returned"`
	ProcessingTime time.Duration         `json:"-"`
}

// NewService creates a recommender over the given dataset store with the
// default weights.
func NewService(data *dataset.Store) *Service {
	return &Service{data: data, weights: DefaultWeights(), maxLimit: config.MaxLimit}
}

// NewServiceWithWeights creates a recommender with custom scoring weights.
func NewServiceWithWeights(data *dataset.Store, w Weights) *Service {
	return &Service{data: data, weights: w, maxLimit: config.MaxLimit}
}

// Recommend validates the limit, snapshots the dataset and runs the
// filter, score and rank stages. A context deadline is honored between
// stages; each stage itself is a bounded in-memory pass.
func (s *Service) Recommend(ctx context.Context, profile models.Profile, query string, limit int) (*Result, error) {
	if err := models.ValidateLimit(limit, s.maxLimit); err != nil {
		return nil, err
	}

	startTime := time.Now()
	records := s.data.Snapshot()
	result := &Result{TotalRecords: len(records)}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filtered := Filter(profile, query, records)
	result.Matched = len(filtered)

	utils.GetLogger().Debug("Filter stage complete",
		zap.Int("input", len(records)),
		zap.Int("passed", len(filtered)),
		zap.Int("dropped", len(records)-len(filtered)),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scored := Score(profile, filtered, s.weights)
	ranked := Rank(scored, limit)

	result.Records = ranked
	result.Returned = len(ranked)
	result.ProcessingTime = time.Since(startTime)

	utils.GetLogger().Info("Recommendation complete",
		zap.Int("total", result.TotalRecords),
		zap.Int("matched", result.Matched),
		zap.Int("returned", result.Returned),
		zap.Duration("processing_time", result.ProcessingTime),
	)

	return result, nil
}

// Recommend is the pure core entry point: filter, score and rank over
// an already-normalized record set. Callers are responsible for limit
// validation; the core never clamps a requested limit beyond the input
// size.
func Recommend(profile models.Profile, query string, records []models.SchemeRecord, limit int, w Weights) []models.ScoredRecord {
	filtered := Filter(profile, query, records)
	scored := Score(profile, filtered, w)
	return Rank(scored, limit)
}
