// Package user contains the identity store's User entity and its errors.
package user

import (
	"errors"

	"github.com/google/uuid"
	"github.com/minibank/minibank/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an email that is already
	// present. Emails are compared case-sensitively, as stored.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login for an unknown email and
	// for a wrong password alike, so the two cases cannot be told apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User is a registered identity. The password is stored only as an
// Argon2id hash and is immutable after registration.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
}

// New creates a User with a fresh id and a hashed password. The plaintext
// password is not retained.
func New(email, password string) (*User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashed,
	}, nil
}
