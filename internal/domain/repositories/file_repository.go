package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// FileRepository defines the interface for file metadata access.
// File records are immutable; there is no update.
type FileRepository interface {
	// Create creates a new file record
	Create(ctx context.Context, file *entities.File) error

	// FindByID finds a file owned by userID
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.File, error)
}
