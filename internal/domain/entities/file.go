package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileType classifies an uploaded artifact
type FileType string

const (
	FileTypeText  FileType = "text"
	FileTypeVideo FileType = "video"
	FileTypeImage FileType = "image"
	FileTypeAudio FileType = "audio"
)

// IsValid checks if the file type is one of the allowed values
func (t FileType) IsValid() bool {
	switch t {
	case FileTypeText, FileTypeVideo, FileTypeImage, FileTypeAudio:
		return true
	}
	return false
}

// FileTypeFromContentType maps a MIME content type onto a file type.
// Anything that is not video, image, or audio counts as text.
func FileTypeFromContentType(contentType string) FileType {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return FileTypeVideo
	case strings.HasPrefix(contentType, "image/"):
		return FileTypeImage
	case strings.HasPrefix(contentType, "audio/"):
		return FileTypeAudio
	}
	return FileTypeText
}

// File represents an uploaded artifact in object storage.
// Records are immutable after creation.
type File struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ObjectKey string    `json:"object_key" gorm:"type:varchar(600);not null;uniqueIndex"`
	SizeBytes int64     `json:"size_bytes" gorm:"not null"`
	Type      FileType  `json:"type" gorm:"type:varchar(20);not null"`

	// Media duration in seconds, when the client reports it
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// NewFile creates a file record
func NewFile(userID uuid.UUID, objectKey string, sizeBytes int64, fileType FileType) *File {
	return &File{
		ID:        uuid.New(),
		UserID:    userID,
		ObjectKey: objectKey,
		SizeBytes: sizeBytes,
		Type:      fileType,
		CreatedAt: time.Now(),
	}
}

// Validate validates file data
func (f *File) Validate() error {
	if f.ObjectKey == "" {
		return ErrInvalidObjectKey
	}
	if f.UserID == uuid.Nil {
		return ErrMissingOwner
	}
	if !f.Type.IsValid() {
		return ErrInvalidFileType
	}
	return nil
}
