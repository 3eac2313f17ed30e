package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// SessionRepository defines the interface for refresh-token sessions
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *entities.Session) error

	// FindByTokenHash finds a session by the hashed refresh token
	FindByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error)

	// Revoke marks a session revoked
	Revoke(ctx context.Context, id uuid.UUID) error

	// RevokeAllForUser revokes every session of a user
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}
