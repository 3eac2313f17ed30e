package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskPriority defines task priorities
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// IsValid checks if the priority is one of the allowed values
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus defines kanban board columns
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "Backlog"
	StatusInProgress TaskStatus = "In Progress"
	StatusReview     TaskStatus = "Review"
	StatusCompleted  TaskStatus = "Completed"
)

// IsValid checks if the status is one of the allowed values
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// Task represents an action item, either user-created or suggested by analysis
type Task struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"type:varchar(500);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Priority    TaskPriority   `json:"priority" gorm:"type:varchar(20);default:'Medium';not null"`
	Status      TaskStatus     `json:"status" gorm:"type:varchar(20);default:'Backlog';not null"`
	Tags        datatypes.JSON `json:"tags" gorm:"type:jsonb;default:'[]'"`

	// Suggested tasks come from analysis and sit outside the kanban board
	// until the user accepts them.
	Suggested bool `json:"suggested" gorm:"default:false;not null"`

	SourceMeetingID *uuid.UUID `json:"source_meeting_id,omitempty" gorm:"type:uuid;index"`

	// Expanded on list reads
	SourceMeeting *Meeting `json:"source_meeting,omitempty" gorm:"foreignKey:SourceMeetingID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewTask creates a task with default values
func NewTask(userID uuid.UUID, title string) *Task {
	now := time.Now()
	return &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Priority:  PriorityMedium,
		Status:    StatusBacklog,
		Tags:      datatypes.JSON([]byte("[]")),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewSuggestedTask creates a task proposed by transcript analysis
func NewSuggestedTask(userID, meetingID uuid.UUID, s SuggestedTask) (*Task, error) {
	task := NewTask(userID, s.Title)
	task.Description = s.Description
	task.Suggested = true
	task.SourceMeetingID = &meetingID
	if s.Priority != "" {
		task.Priority = s.Priority
	}
	if err := task.SetTags(s.Tags); err != nil {
		return nil, err
	}
	return task, nil
}

// SetTags stores the tag list
func (t *Task) SetTags(tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	t.Tags = b
	return nil
}

// GetTags decodes the stored tag list
func (t *Task) GetTags() ([]string, error) {
	var tags []string
	if len(t.Tags) == 0 {
		return tags, nil
	}
	err := json.Unmarshal(t.Tags, &tags)
	return tags, err
}

// Validate validates task data
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrInvalidTitle
	}
	if t.UserID == uuid.Nil {
		return ErrMissingOwner
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
