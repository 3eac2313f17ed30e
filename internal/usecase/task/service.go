package task

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/internal/domain/repositories"
)

// Service handles task CRUD for the kanban board
type Service struct {
	taskRepo repositories.TaskRepository
	logger   *zap.Logger
}

// NewService creates a task service
func NewService(taskRepo repositories.TaskRepository, logger *zap.Logger) *Service {
	return &Service{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// CreateInput is a manual task creation request
type CreateInput struct {
	Title           string
	Description     string
	Priority        entities.TaskPriority
	Status          entities.TaskStatus
	Tags            []string
	SourceMeetingID *uuid.UUID
}

// List returns the user's tasks, newest first, with source meetings expanded
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list tasks", err)
	}
	return tasks, nil
}

// Create creates a task. User-created tasks are active kanban entries,
// never suggested.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*entities.Task, error) {
	if input.Title == "" {
		return nil, errors.ErrInvalidArgument("title is required")
	}

	task := entities.NewTask(userID, input.Title)
	task.Description = input.Description
	if input.Priority != "" {
		if !input.Priority.IsValid() {
			return nil, errors.ErrInvalidArgument("invalid priority")
		}
		task.Priority = input.Priority
	}
	if input.Status != "" {
		if !input.Status.IsValid() {
			return nil, errors.ErrInvalidArgument("invalid status")
		}
		task.Status = input.Status
	}
	task.SourceMeetingID = input.SourceMeetingID
	if err := task.SetTags(input.Tags); err != nil {
		return nil, errors.ErrInternal(err)
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, errors.ErrDBQueryFailed("create task", err)
	}
	return task, nil
}

// Update applies a merge-patch to a task. Flipping "suggested" to false is
// how an analysis-proposed task becomes an active kanban entry.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*entities.Task, error) {
	if len(fields) == 0 {
		return nil, errors.ErrInvalidArgument("no fields to update")
	}
	task, err := s.taskRepo.Update(ctx, userID, id, fields)
	if err != nil {
		if err == entities.ErrTaskNotFound {
			return nil, errors.ErrTaskNotFound(id.String())
		}
		return nil, errors.ErrDBQueryFailed("update task", err)
	}
	return task, nil
}

// Delete removes a task
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, userID, id); err != nil {
		if err == entities.ErrTaskNotFound {
			return errors.ErrTaskNotFound(id.String())
		}
		return errors.ErrDBQueryFailed("delete task", err)
	}
	return nil
}
