package document

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/internal/domain/repositories"
	"github.com/meetscribe/meetscribe/internal/infrastructure/storage"
)

// Storage abstracts the object storage gateway
type Storage interface {
	Configured() bool
	Upload(ctx context.Context, reader io.Reader, size int64, originalName, contentType string) (*storage.UploadResult, error)
	DownloadURL(ctx context.Context, objectKey string) (string, error)
}

// Summarizer produces a freeform summary of plain text
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Service handles document upload, signed-URL download, and standalone
// text-file summarization
type Service struct {
	storage    Storage
	fileRepo   repositories.FileRepository
	summarizer Summarizer
	maxBytes   int64
	logger     *zap.Logger
}

// NewService creates a document service
func NewService(store Storage, fileRepo repositories.FileRepository, summarizer Summarizer, maxBytes int64, logger *zap.Logger) *Service {
	return &Service{
		storage:    store,
		fileRepo:   fileRepo,
		summarizer: summarizer,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// UploadInput is a document upload request
type UploadInput struct {
	Reader          io.Reader
	FileName        string
	ContentType     string
	Size            int64
	DurationSeconds *float64
}

// UploadResponse describes the stored document
type UploadResponse struct {
	FileID    uuid.UUID `json:"fileId"`
	URL       string    `json:"url"`
	ObjectKey string    `json:"objectKey"`
}

// Upload stores a document and records its metadata. Files at or over the
// size limit are rejected before touching storage.
func (s *Service) Upload(ctx context.Context, user *entities.User, input UploadInput) (*UploadResponse, error) {
	if input.Reader == nil || input.FileName == "" {
		return nil, errors.ErrInvalidArgument("file is required")
	}
	if s.maxBytes > 0 && input.Size >= s.maxBytes {
		return nil, errors.ErrInvalidArgument(fmt.Sprintf("file size must be below %d bytes", s.maxBytes))
	}

	uploaded, err := s.storage.Upload(ctx, input.Reader, input.Size, input.FileName, input.ContentType)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("document upload failed", zap.String("file_name", input.FileName), zap.Error(err))
		}
		return nil, errors.ErrStorageFailed("upload document", err)
	}
	if uploaded == nil {
		return nil, errors.ErrStorageFailed("upload document", fmt.Errorf("storage is not configured"))
	}

	file := entities.NewFile(user.ID, uploaded.ObjectKey, uploaded.SizeBytes, entities.FileTypeFromContentType(input.ContentType))
	file.DurationSeconds = input.DurationSeconds
	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, errors.ErrDBQueryFailed("create file record", err)
	}

	return &UploadResponse{
		FileID:    file.ID,
		URL:       uploaded.URL,
		ObjectKey: uploaded.ObjectKey,
	}, nil
}

// SummarizeResponse is the outcome of a standalone file summarization.
// DownloadLink and FileID are empty when the copy could not be stored.
type SummarizeResponse struct {
	Summary      string     `json:"summary"`
	DownloadLink string     `json:"download_link,omitempty"`
	FileID       *uuid.UUID `json:"fileId,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// SummarizeFile summarizes a plain-text file and stores a copy. Only .txt
// uploads are accepted. Storing the copy is best-effort: a storage failure
// still returns the generated summary.
func (s *Service) SummarizeFile(ctx context.Context, user *entities.User, input UploadInput) (*SummarizeResponse, error) {
	if input.Reader == nil || input.FileName == "" {
		return nil, errors.ErrInvalidArgument("file is required")
	}
	if input.ContentType != "text/plain" && !strings.HasSuffix(input.FileName, ".txt") {
		return nil, errors.ErrInvalidArgument("only .txt files are allowed")
	}
	if s.maxBytes > 0 && input.Size >= s.maxBytes {
		return nil, errors.ErrInvalidArgument(fmt.Sprintf("file size must be below %d bytes", s.maxBytes))
	}

	data, err := io.ReadAll(input.Reader)
	if err != nil {
		return nil, errors.ErrInvalidPayload()
	}
	if len(data) == 0 {
		return nil, errors.ErrInvalidArgument("file is empty")
	}

	summary, err := s.summarizer.Summarize(ctx, string(data))
	if err != nil {
		return nil, err
	}

	resp := &SummarizeResponse{Summary: summary}

	uploaded, err := s.storage.Upload(ctx, strings.NewReader(string(data)), int64(len(data)), input.FileName, "text/plain")
	if err != nil || uploaded == nil {
		if err != nil && s.logger != nil {
			s.logger.Warn("summarized file upload failed", zap.String("file_name", input.FileName), zap.Error(err))
		}
		resp.Message = "summary generated, but file upload failed or skipped"
		return resp, nil
	}

	file := entities.NewFile(user.ID, uploaded.ObjectKey, uploaded.SizeBytes, entities.FileTypeText)
	if err := s.fileRepo.Create(ctx, file); err != nil {
		if s.logger != nil {
			s.logger.Warn("summarized file record failed", zap.String("object_key", uploaded.ObjectKey), zap.Error(err))
		}
		resp.DownloadLink = uploaded.URL
		return resp, nil
	}

	resp.DownloadLink = uploaded.URL
	resp.FileID = &file.ID
	return resp, nil
}

// DownloadURL mints a fresh signed URL for a stored document. Unknown,
// foreign, or unresolvable files all read as not found.
func (s *Service) DownloadURL(ctx context.Context, user *entities.User, fileID uuid.UUID) (string, error) {
	file, err := s.fileRepo.FindByID(ctx, user.ID, fileID)
	if err != nil {
		if err == entities.ErrFileNotFound {
			return "", errors.ErrFileNotFound(fileID.String())
		}
		return "", errors.ErrDBQueryFailed("find file", err)
	}

	url, err := s.storage.DownloadURL(ctx, file.ObjectKey)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("signed URL generation failed", zap.String("object_key", file.ObjectKey), zap.Error(err))
		}
		return "", errors.ErrStorageFailed("generate download URL", err)
	}
	if url == "" {
		return "", errors.ErrFileNotFound(fileID.String())
	}
	return url, nil
}
