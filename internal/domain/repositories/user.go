package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrConflict (wrapped) when
	// the email or subject ID already exists.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists name, role, email_verified and last_login_at
	Update(ctx context.Context, user *models.User) error
}
