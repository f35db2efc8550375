package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier defines the interface for hashing and comparing passwords.
type PasswordVerifier interface {
	// HashPassword generates a hash from a plaintext password.
	HashPassword(ctx context.Context, password string) (string, error)

	// Compare checks whether the plaintext password matches the stored hash.
	// Returns nil on match and an error on mismatch or failure.
	Compare(ctx context.Context, hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using the bcrypt algorithm.
type BcryptVerifier struct {
	cost int
}

var _ PasswordVerifier = (*BcryptVerifier)(nil)

// NewBcryptVerifier creates a BcryptVerifier with the given cost.
// A cost of 0 or less selects bcrypt.DefaultCost.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

// HashPassword implements PasswordVerifier.HashPassword.
func (v *BcryptVerifier) HashPassword(ctx context.Context, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare implements PasswordVerifier.Compare.
func (v *BcryptVerifier) Compare(ctx context.Context, hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}
