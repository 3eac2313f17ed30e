package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// TaskRepository defines the interface for task data access.
// Every operation except Create is scoped to the owning user.
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *entities.Task) error

	// FindByID finds a task owned by userID
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.Task, error)

	// ListByUser returns the user's tasks ordered by creation time
	// descending, with the source meeting expanded
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error)

	// Update applies a merge-patch of fields to a task owned by userID
	Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*entities.Task, error)

	// Delete deletes a task owned by userID
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
