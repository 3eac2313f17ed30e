package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/internal/domain/repositories"
	"github.com/meetscribe/meetscribe/internal/infrastructure/storage"
)

// Analyzer runs a transcript through the extraction model
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (*entities.AnalysisResult, error)
}

// Storage stores uploaded artifacts
type Storage interface {
	Upload(ctx context.Context, reader io.Reader, size int64, originalName, contentType string) (*storage.UploadResult, error)
}

// Transcriber converts audio/video recordings to text
type Transcriber interface {
	Configured() bool
	TranscribeFromURL(ctx context.Context, recordingURL string) (string, error)
}

// Service orchestrates the analyze-and-persist pipeline
type Service struct {
	analyzer    Analyzer
	storage     Storage
	transcriber Transcriber
	meetingRepo repositories.MeetingRepository
	fileRepo    repositories.FileRepository
	logger      *zap.Logger
}

// NewService creates an ingestion service
func NewService(
	analyzer Analyzer,
	store Storage,
	transcriber Transcriber,
	meetingRepo repositories.MeetingRepository,
	fileRepo repositories.FileRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		analyzer:    analyzer,
		storage:     store,
		transcriber: transcriber,
		meetingRepo: meetingRepo,
		fileRepo:    fileRepo,
		logger:      logger,
	}
}

// TextInput is the pasted-transcript ingestion request
type TextInput struct {
	Transcript string
	Title      string
	Date       *time.Time
	Category   string
}

// FileInput is the uploaded-file ingestion request. Either Reader (a fresh
// upload) or FileID (a previously uploaded file, accompanied by the
// transcript text) must be set.
type FileInput struct {
	Reader      io.Reader
	FileName    string
	ContentType string
	Size        int64
	FileID      *uuid.UUID
	Transcript  string
	Title       string
	Date        *time.Time
	Category    string
}

// Result bundles the persisted meeting with its suggested tasks
type Result struct {
	Meeting *entities.Meeting `json:"meeting"`
	Tasks   []*entities.Task  `json:"tasks"`
}

// AnalyzeText ingests a pasted transcript
func (s *Service) AnalyzeText(ctx context.Context, user *entities.User, input TextInput) (*Result, error) {
	if input.Transcript == "" {
		return nil, errors.ErrInvalidArgument("transcript is required")
	}
	return s.analyzeAndPersist(ctx, user, input.Transcript, input.Title, input.Date, input.Category, nil)
}

// AnalyzeFile ingests an uploaded file. Text files feed the analysis
// directly; audio/video is stored first and transcribed from the signed URL.
// Storing the artifact is best-effort: a failed upload is logged and the
// analysis continues without a file reference (except when transcription
// depends on the stored object).
func (s *Service) AnalyzeFile(ctx context.Context, user *entities.User, input FileInput) (*Result, error) {
	if input.Reader == nil && input.FileID == nil {
		return nil, errors.ErrInvalidArgument("file or fileId is required")
	}

	var file *entities.File
	var transcript string

	if input.Reader != nil {
		data, err := io.ReadAll(input.Reader)
		if err != nil {
			return nil, errors.ErrInvalidPayload()
		}
		fileType := entities.FileTypeFromContentType(input.ContentType)

		uploaded, err := s.storage.Upload(ctx, bytes.NewReader(data), int64(len(data)), input.FileName, input.ContentType)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("artifact upload failed, continuing without file record",
					zap.String("file_name", input.FileName), zap.Error(err))
			}
		} else if uploaded != nil {
			file = entities.NewFile(user.ID, uploaded.ObjectKey, uploaded.SizeBytes, fileType)
			if err := s.fileRepo.Create(ctx, file); err != nil {
				if s.logger != nil {
					s.logger.Warn("file record creation failed, continuing", zap.Error(err))
				}
				file = nil
			}
		}

		switch fileType {
		case entities.FileTypeAudio, entities.FileTypeVideo:
			if !s.transcriber.Configured() {
				return nil, errors.ErrInvalidArgument("audio/video ingestion requires a transcription provider")
			}
			if uploaded == nil || err != nil {
				return nil, errors.ErrStorageFailed("upload recording for transcription", err)
			}
			transcript, err = s.transcriber.TranscribeFromURL(ctx, uploaded.URL)
			if err != nil {
				return nil, errors.ErrTranscriptionFailed(err)
			}
		default:
			transcript = string(data)
		}
	} else {
		existing, err := s.fileRepo.FindByID(ctx, user.ID, *input.FileID)
		if err != nil {
			return nil, errors.ErrFileNotFound(input.FileID.String())
		}
		file = existing
		transcript = input.Transcript
	}

	if transcript == "" {
		return nil, errors.ErrInvalidArgument("transcript is required")
	}

	return s.analyzeAndPersist(ctx, user, transcript, input.Title, input.Date, input.Category, file)
}

// analyzeAndPersist runs the model and writes the meeting, its suggested
// tasks, and the ordered task references in one transaction.
func (s *Service) analyzeAndPersist(ctx context.Context, user *entities.User, transcript, title string, date *time.Time, category string, file *entities.File) (*Result, error) {
	analysis, err := s.analyzer.Analyze(ctx, transcript)
	if err != nil {
		return nil, err
	}

	meeting, tasks, err := s.buildMeeting(user, analysis, title, date, category, file)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	if err := s.meetingRepo.CreateWithTasks(ctx, meeting, tasks); err != nil {
		return nil, errors.ErrDBTransactionFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("meeting ingested",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("user_id", user.ID.String()),
			zap.Int("suggested_tasks", len(tasks)))
	}

	return &Result{Meeting: meeting, Tasks: tasks}, nil
}

// buildMeeting maps an analysis onto entities. Request-supplied fields win
// over analysis-derived ones.
func (s *Service) buildMeeting(user *entities.User, analysis *entities.AnalysisResult, title string, date *time.Time, category string, file *entities.File) (*entities.Meeting, []*entities.Task, error) {
	if title == "" {
		title = analysis.Title
	}
	meetingDate := time.Now()
	if date != nil {
		meetingDate = *date
	}
	if category == "" {
		category = analysis.Category
	}

	meeting := entities.NewMeeting(user.ID, title, meetingDate)
	meeting.Summary = analysis.Summary
	meeting.Category = category
	confidence := analysis.Confidence
	meeting.Confidence = &confidence

	if err := meeting.SetTranscript(analysis.Transcript); err != nil {
		return nil, nil, fmt.Errorf("failed to encode transcript: %w", err)
	}
	if err := meeting.SetMOM(analysis.MOM); err != nil {
		return nil, nil, fmt.Errorf("failed to encode mom: %w", err)
	}
	if err := meeting.SetTags(analysis.Tags); err != nil {
		return nil, nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	if file != nil {
		switch file.Type {
		case entities.FileTypeVideo, entities.FileTypeAudio:
			meeting.VideoFileID = &file.ID
		default:
			meeting.TranscriptFileID = &file.ID
		}
	}

	tasks := make([]*entities.Task, 0, len(analysis.Tasks))
	for _, suggested := range analysis.Tasks {
		task, err := entities.NewSuggestedTask(user.ID, meeting.ID, suggested)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build suggested task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return meeting, tasks, nil
}
