package task

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreateTaskRequest is the body for POST /api/tasks
type CreateTaskRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	Tags            []string   `json:"tags"`
	SourceMeetingID *uuid.UUID `json:"source_meeting_id"`
}

// UpdateTaskRequest is the merge-patch body for PATCH /api/tasks/:id.
// Setting Suggested to false accepts an analysis-proposed task onto the
// kanban board.
type UpdateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Priority    *string  `json:"priority"`
	Status      *string  `json:"status"`
	Suggested   *bool    `json:"suggested"`
	Tags        []string `json:"tags"`
}

// Fields converts the request into a column/value merge-patch map
func (r *UpdateTaskRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Priority != nil {
		fields["priority"] = *r.Priority
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.Suggested != nil {
		fields["suggested"] = *r.Suggested
	}
	if r.Tags != nil {
		if b, err := json.Marshal(r.Tags); err == nil {
			fields["tags"] = datatypes.JSON(b)
		}
	}
	return fields
}
