// Package models defines the data structures for the scheme recommendation engine.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrInvalidLimit  = errors.New("limit must be between 1 and the configured maximum")
	ErrInvalidAge    = errors.New("age cannot be negative")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrNotAuthorized = errors.New("admin password mismatch")
	ErrStoreNotFound = errors.New("signup store not found")
	ErrNoDataSource  = errors.New("no dataset source configured")
)

// ValidateSignup validates signup data supplied by a user.
func ValidateSignup(s *SignupCreate) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Age < 0 {
		return ErrInvalidAge
	}
	if s.Email != "" && !isValidEmail(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// isValidEmail performs basic email validation.
func isValidEmail(email string) bool {
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex <= atIndex+1 || dotIndex == len(email)-1 {
		return false
	}
	return true
}
