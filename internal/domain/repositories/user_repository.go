package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByOAuth finds a user by OAuth provider and subject
	FindByOAuth(ctx context.Context, provider, subject string) (*entities.User, error)

	// Update updates a user
	Update(ctx context.Context, user *entities.User) error

	// List returns all users, newest first
	List(ctx context.Context) ([]*entities.User, error)
}
