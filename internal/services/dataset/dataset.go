// Package dataset owns the normalized scheme table shared across requests.
package dataset

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/services/normalizer"
	"scheme-recommendation-engine/internal/utils"
)

// Source supplies raw dataset bytes. Implementations own file existence
// checks and transport errors; the store only sees bytes or an error.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// Store holds the normalized dataset. The record slice handed out by
// Snapshot is immutable by contract: Reload builds a whole new slice and
// swaps it in, it never mutates in place, so concurrent requests can
// share a snapshot by reference.
type Store struct {
	mu       sync.RWMutex
	records  []models.SchemeRecord
	loadedAt time.Time

	source Source
	norm   *normalizer.Normalizer
}

// NewStore creates an empty store backed by the given source.
func NewStore(source Source, norm *normalizer.Normalizer) *Store {
	if norm == nil {
		norm = normalizer.New()
	}
	return &Store{source: source, norm: norm}
}

// Reload fetches the source, normalizes it and replaces the current
// dataset. Ragged rows are tolerated at load time (padded or truncated);
// rows the reader rejects are skipped and counted. An empty result is
// valid (zero candidate records). Returns the new row count.
func (s *Store) Reload(ctx context.Context) (int, error) {
	if s.source == nil {
		return 0, models.ErrNoDataSource
	}

	data, err := s.source.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch dataset from %s: %w", s.source.Name(), err)
	}

	table, loadErrors := utils.LoadTableString(string(data))
	if len(loadErrors) > 0 {
		utils.GetLogger().Warn("Dataset loaded with skipped rows",
			zap.String("source", s.source.Name()),
			zap.Int("skipped", len(loadErrors)),
			zap.Error(loadErrors[0]),
		)
	}

	records := s.norm.Normalize(table)

	s.mu.Lock()
	s.records = records
	s.loadedAt = time.Now().UTC()
	s.mu.Unlock()

	utils.GetLogger().Info("Dataset reloaded",
		zap.String("source", s.source.Name()),
		zap.Int("rows", len(records)),
	)

	return len(records), nil
}

// Snapshot returns the current normalized dataset. Callers must treat
// the returned slice as read-only.
func (s *Store) Snapshot() []models.SchemeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Len returns the current row count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// LoadedAt returns when the dataset was last replaced.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// States returns the reference state list merged with the distinct
// non-empty states present in the dataset, sorted and deduplicated.
func (s *Store) States() []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, len(models.AllStates))

	for _, st := range models.AllStates {
		if !seen[st] {
			seen[st] = true
			merged = append(merged, st)
		}
	}
	for _, rec := range s.Snapshot() {
		st := strings.TrimSpace(rec.StateTag)
		if st != "" && !seen[st] {
			seen[st] = true
			merged = append(merged, st)
		}
	}

	sort.Strings(merged)
	return merged
}
