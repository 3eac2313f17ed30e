package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access.
// Every operation except Create is scoped to the owning user.
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// CreateWithTasks persists a meeting, its suggested tasks, and the
	// ordered task reference list in a single transaction.
	CreateWithTasks(ctx context.Context, meeting *entities.Meeting, tasks []*entities.Task) error

	// FindByID finds a meeting owned by userID, with tasks and files expanded
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.Meeting, error)

	// ListByUser returns the user's meetings ordered by date descending,
	// with tasks expanded
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error)

	// Update applies a merge-patch of fields to a meeting owned by userID
	Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*entities.Meeting, error)

	// Delete deletes a meeting owned by userID. Related tasks and files
	// are left in place.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
