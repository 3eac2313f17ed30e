package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// MeetingRepository implements the meeting repository interface using GORM
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{
		db: db,
	}
}

// Create creates a new meeting
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// CreateWithTasks persists the meeting, its suggested tasks, and the ordered
// task reference list atomically. Either everything lands or nothing does.
func (r *MeetingRepository) CreateWithTasks(ctx context.Context, meeting *entities.Meeting, tasks []*entities.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}

		ids := make([]uuid.UUID, 0, len(tasks))
		for _, task := range tasks {
			task.SourceMeetingID = &meeting.ID
			if err := tx.Create(task).Error; err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			ids = append(ids, task.ID)
		}

		if err := meeting.SetTaskIDs(ids); err != nil {
			return fmt.Errorf("failed to encode task references: %w", err)
		}
		if err := tx.Model(&entities.Meeting{}).
			Where("id = ?", meeting.ID).
			Update("task_ids", meeting.TaskIDs).Error; err != nil {
			return fmt.Errorf("failed to link tasks to meeting: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// FindByID finds a meeting owned by userID with tasks and files expanded
func (r *MeetingRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Tasks").
		Preload("VideoFile").
		Preload("TranscriptFile").
		Where("id = ? AND user_id = ?", id, userID).
		First(&meeting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting by ID: %w", err)
	}
	return &meeting, nil
}

// ListByUser returns the user's meetings ordered by date descending
func (r *MeetingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Tasks").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// Update applies a merge-patch of fields to a meeting owned by userID
func (r *MeetingRepository) Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*entities.Meeting, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, entities.ErrMeetingNotFound
	}
	return r.FindByID(ctx, userID, id)
}

// Delete deletes a meeting owned by userID. Tasks and files survive.
func (r *MeetingRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Meeting{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete meeting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}
