package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scheme-recommendation-engine/internal/models"
)

var csvHeader = []string{"id", "timestamp", "name", "age", "contact", "email"}

// CSVStore appends signups to a local CSV file. It is the default store
// when no database is configured.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore creates a CSV-backed signup store at the given path. The
// file is created with a header row on first save.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Save appends a signup row, creating the file if needed.
func (s *CSVStore) Save(_ context.Context, signup *models.SignupCreate) (*models.Signup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &models.Signup{
		ID:        uuid.NewString(),
		Name:      signup.Name,
		Age:       signup.Age,
		Contact:   signup.Contact,
		Email:     signup.Email,
		CreatedAt: time.Now().UTC(),
	}

	_, statErr := os.Stat(s.path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open signup store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(csvHeader); err != nil {
			return nil, fmt.Errorf("failed to write signup header: %w", err)
		}
	}
	row := []string{
		rec.ID,
		rec.CreatedAt.Format(time.RFC3339),
		rec.Name,
		strconv.Itoa(rec.Age),
		rec.Contact,
		rec.Email,
	}
	if err := w.Write(row); err != nil {
		return nil, fmt.Errorf("failed to write signup row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush signup row: %w", err)
	}

	return rec, nil
}

// List reads the store and returns the last limit signups in file order.
func (s *CSVStore) List(_ context.Context, limit int) ([]models.Signup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// FindByEmail returns the most recent signup with the given email.
func (s *CSVStore) FindByEmail(_ context.Context, email string) (*models.Signup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	for i := len(all) - 1; i >= 0; i-- {
		if strings.EqualFold(all[i].Email, email) {
			return &all[i], nil
		}
	}
	return nil, models.ErrStoreNotFound
}

// Close is a no-op for the CSV store.
func (s *CSVStore) Close() {}

func (s *CSVStore) readAll() ([]models.Signup, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open signup store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read signup store: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	signups := make([]models.Signup, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(csvHeader) {
			continue
		}
		age, _ := strconv.Atoi(row[3])
		createdAt, _ := time.Parse(time.RFC3339, row[1])
		signups = append(signups, models.Signup{
			ID:        row[0],
			CreatedAt: createdAt,
			Name:      row[2],
			Age:       age,
			Contact:   row[4],
			Email:     row[5],
		})
	}
	return signups, nil
}
