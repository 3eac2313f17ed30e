package meeting

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AnalyzeTextRequest is the body for POST /api/meetings/analyze/text
type AnalyzeTextRequest struct {
	Transcript string     `json:"transcript" validate:"required"`
	Title      string     `json:"title"`
	Date       *time.Time `json:"date"`
	Category   string     `json:"category"`
}

// CreateMeetingRequest is the body for POST /api/meetings
type CreateMeetingRequest struct {
	Title    string    `json:"title" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	Duration string    `json:"duration"`
	Category string    `json:"category"`
	Summary  string    `json:"summary"`
}

// UpdateMeetingRequest is the merge-patch body for PUT /api/meetings/:id.
// Only supplied fields are written.
type UpdateMeetingRequest struct {
	Title    *string    `json:"title"`
	Date     *time.Time `json:"date"`
	Duration *string    `json:"duration"`
	Category *string    `json:"category"`
	Summary  *string    `json:"summary"`
	Tags     []string   `json:"tags"`
}

// Fields converts the request into a column/value merge-patch map
func (r *UpdateMeetingRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Date != nil {
		fields["date"] = *r.Date
	}
	if r.Duration != nil {
		fields["duration"] = *r.Duration
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Summary != nil {
		fields["summary"] = *r.Summary
	}
	if r.Tags != nil {
		if b, err := json.Marshal(r.Tags); err == nil {
			fields["tags"] = datatypes.JSON(b)
		}
	}
	return fields
}
