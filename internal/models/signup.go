// Package models defines the data structures for the scheme recommendation engine.
package models

import (
	"time"
)

// Signup is a saved user record in the signup store.
type Signup struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Age       int       `json:"age" db:"age"`
	Contact   string    `json:"contact,omitempty" db:"contact"`
	Email     string    `json:"email,omitempty" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SignupCreate represents the data needed to save a new signup.
type SignupCreate struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
}
