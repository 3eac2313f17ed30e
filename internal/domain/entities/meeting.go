package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting represents an analyzed (or manually created) meeting record
type Meeting struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Title    string    `json:"title" gorm:"type:varchar(500);not null"`
	Date     time.Time `json:"date" gorm:"type:timestamp;not null;index"`
	Duration string    `json:"duration" gorm:"type:varchar(50);default:'0m'"`
	Summary  string    `json:"summary" gorm:"type:text"`
	Category string    `json:"category" gorm:"type:varchar(100)"`

	// Structured analysis output (stored as JSONB in PostgreSQL)
	Transcript datatypes.JSON `json:"transcript" gorm:"type:jsonb;default:'[]'"`
	MOM        datatypes.JSON `json:"mom" gorm:"type:jsonb;default:'[]'"`
	Tags       datatypes.JSON `json:"tags" gorm:"type:jsonb;default:'[]'"`
	TaskIDs    datatypes.JSON `json:"task_ids" gorm:"column:task_ids;type:jsonb;default:'[]'"`

	Confidence *int `json:"confidence_level,omitempty" gorm:"column:confidence"`

	// File references (nullable; files are never deleted with the meeting)
	VideoFileID      *uuid.UUID `json:"video_file_id,omitempty" gorm:"type:uuid"`
	TranscriptFileID *uuid.UUID `json:"transcript_file_id,omitempty" gorm:"type:uuid"`

	// Expanded relations, populated on detail reads
	Tasks          []Task `json:"tasks,omitempty" gorm:"foreignKey:SourceMeetingID"`
	VideoFile      *File  `json:"video_file,omitempty" gorm:"foreignKey:VideoFileID"`
	TranscriptFile *File  `json:"transcript_file,omitempty" gorm:"foreignKey:TranscriptFileID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewMeeting creates a meeting with default values
func NewMeeting(userID uuid.UUID, title string, date time.Time) *Meeting {
	now := time.Now()
	empty := datatypes.JSON([]byte("[]"))
	return &Meeting{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Date:       date,
		Duration:   "0m",
		Transcript: empty,
		MOM:        empty,
		Tags:       empty,
		TaskIDs:    empty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SetTranscript stores the ordered transcript segments
func (m *Meeting) SetTranscript(segments []TranscriptSegment) error {
	b, err := json.Marshal(segments)
	if err != nil {
		return err
	}
	m.Transcript = b
	return nil
}

// SetMOM stores the ordered minutes-of-meeting items
func (m *Meeting) SetMOM(items []MOMItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.MOM = b
	return nil
}

// SetTags stores the tag list
func (m *Meeting) SetTags(tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	m.Tags = b
	return nil
}

// SetTaskIDs stores the ordered task reference list
func (m *Meeting) SetTaskIDs(ids []uuid.UUID) error {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	m.TaskIDs = b
	return nil
}

// GetTranscript decodes the stored transcript segments
func (m *Meeting) GetTranscript() ([]TranscriptSegment, error) {
	var segments []TranscriptSegment
	if len(m.Transcript) == 0 {
		return segments, nil
	}
	err := json.Unmarshal(m.Transcript, &segments)
	return segments, err
}

// GetMOM decodes the stored minutes-of-meeting items
func (m *Meeting) GetMOM() ([]MOMItem, error) {
	var items []MOMItem
	if len(m.MOM) == 0 {
		return items, nil
	}
	err := json.Unmarshal(m.MOM, &items)
	return items, err
}

// GetTags decodes the stored tag list
func (m *Meeting) GetTags() ([]string, error) {
	var tags []string
	if len(m.Tags) == 0 {
		return tags, nil
	}
	err := json.Unmarshal(m.Tags, &tags)
	return tags, err
}

// GetTaskIDs decodes the ordered task reference list
func (m *Meeting) GetTaskIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if len(m.TaskIDs) == 0 {
		return ids, nil
	}
	err := json.Unmarshal(m.TaskIDs, &ids)
	return ids, err
}

// Validate validates meeting data
func (m *Meeting) Validate() error {
	if m.Title == "" {
		return ErrInvalidTitle
	}
	if m.Date.IsZero() {
		return ErrInvalidDate
	}
	if m.UserID == uuid.Nil {
		return ErrMissingOwner
	}
	if m.Confidence != nil && (*m.Confidence < 0 || *m.Confidence > 100) {
		return ErrInvalidConfidence
	}
	return nil
}
