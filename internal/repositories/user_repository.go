package repositories

import (
	"errors"

	"pasar/internal/models"
)

// ErrUserNotFound is returned by lookups when no matching account exists.
// Callers use it to tell "free username" apart from a real storage failure.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
