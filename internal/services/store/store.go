// Package store persists user signups.
package store

import (
	"context"

	"scheme-recommendation-engine/internal/models"
)

// SignupStore is the persistence contract for saved user details. The
// recommendation pipeline never touches this; it exists for the signup
// and admin surfaces only.
type SignupStore interface {
	// Save persists a new signup and returns the stored record.
	Save(ctx context.Context, signup *models.SignupCreate) (*models.Signup, error)

	// List returns up to limit signups, most recent last.
	List(ctx context.Context, limit int) ([]models.Signup, error)

	// FindByEmail returns the most recent signup with the given email.
	FindByEmail(ctx context.Context, email string) (*models.Signup, error)

	// Close releases any underlying resources.
	Close()
}
