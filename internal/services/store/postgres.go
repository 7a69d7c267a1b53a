package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scheme-recommendation-engine/internal/models"
)

// PostgresStore persists signups in a Postgres table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and ensures the signups table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS signups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			age INT NOT NULL,
			contact TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure signups table: %w", err)
	}
	return nil
}

// Save inserts a new signup.
func (s *PostgresStore) Save(ctx context.Context, signup *models.SignupCreate) (*models.Signup, error) {
	rec := &models.Signup{
		ID:        uuid.NewString(),
		Name:      signup.Name,
		Age:       signup.Age,
		Contact:   signup.Contact,
		Email:     signup.Email,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO signups (id, name, age, contact, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := s.pool.Exec(ctx, query,
		rec.ID, rec.Name, rec.Age, rec.Contact, rec.Email, rec.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to save signup: %w", err)
	}

	return rec, nil
}

// List returns up to limit signups, oldest first.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]models.Signup, error) {
	query := `
		SELECT id, name, age, contact, email, created_at
		FROM (
			SELECT id, name, age, contact, email, created_at
			FROM signups ORDER BY created_at DESC LIMIT $1
		) recent
		ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list signups: %w", err)
	}
	defer rows.Close()

	var signups []models.Signup
	for rows.Next() {
		var rec models.Signup
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Age, &rec.Contact, &rec.Email, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signup: %w", err)
		}
		signups = append(signups, rec)
	}

	return signups, rows.Err()
}

// FindByEmail returns the most recent signup with the given email.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Signup, error) {
	query := `
		SELECT id, name, age, contact, email, created_at
		FROM signups
		WHERE LOWER(email) = LOWER($1)
		ORDER BY created_at DESC
		LIMIT 1`

	var rec models.Signup
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&rec.ID, &rec.Name, &rec.Age, &rec.Contact, &rec.Email, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find signup: %w", err)
	}

	return &rec, nil
}

// HealthCheck verifies database connectivity.
func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
