package ingestion

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/internal/infrastructure/storage"
)

type fakeAnalyzer struct {
	result *entities.AnalysisResult
	err    error
	got    string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, transcript string) (*entities.AnalysisResult, error) {
	f.got = transcript
	return f.result, f.err
}

type fakeStorage struct {
	result *storage.UploadResult
	err    error
}

func (f *fakeStorage) Upload(ctx context.Context, reader io.Reader, size int64, name, contentType string) (*storage.UploadResult, error) {
	return f.result, f.err
}

type fakeTranscriber struct {
	configured bool
	text       string
	err        error
}

func (f *fakeTranscriber) Configured() bool { return f.configured }

func (f *fakeTranscriber) TranscribeFromURL(ctx context.Context, url string) (string, error) {
	return f.text, f.err
}

type fakeMeetingRepo struct {
	created *entities.Meeting
	tasks   []*entities.Task
	err     error
}

func (f *fakeMeetingRepo) Create(ctx context.Context, m *entities.Meeting) error { return f.err }

func (f *fakeMeetingRepo) CreateWithTasks(ctx context.Context, m *entities.Meeting, tasks []*entities.Task) error {
	if f.err != nil {
		return f.err
	}
	f.created = m
	f.tasks = tasks
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		t.SourceMeetingID = &m.ID
		ids = append(ids, t.ID)
	}
	return m.SetTaskIDs(ids)
}

func (f *fakeMeetingRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.Meeting, error) {
	return nil, entities.ErrMeetingNotFound
}

func (f *fakeMeetingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepo) Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*entities.Meeting, error) {
	return nil, entities.ErrMeetingNotFound
}

func (f *fakeMeetingRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return entities.ErrMeetingNotFound
}

type fakeFileRepo struct {
	files map[uuid.UUID]*entities.File
}

func (f *fakeFileRepo) Create(ctx context.Context, file *entities.File) error {
	if f.files == nil {
		f.files = make(map[uuid.UUID]*entities.File)
	}
	f.files[file.ID] = file
	return nil
}

func (f *fakeFileRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.File, error) {
	file, ok := f.files[id]
	if !ok || file.UserID != userID {
		return nil, entities.ErrFileNotFound
	}
	return file, nil
}

func sampleAnalysis() *entities.AnalysisResult {
	return &entities.AnalysisResult{
		Title:    "Roadmap review",
		Summary:  "Discussed the roadmap.",
		Category: "Planning",
		Tags:     []string{"roadmap"},
		MOM: []entities.MOMItem{
			{Kind: entities.MOMKindDecision, Content: "Cut scope"},
		},
		Tasks: []entities.SuggestedTask{
			{Title: "Update roadmap doc", Priority: entities.PriorityHigh, Tags: []string{"docs"}},
			{Title: "Notify stakeholders", Priority: entities.PriorityMedium},
		},
		Confidence: 92,
	}
}

func testUser() *entities.User {
	return &entities.User{ID: uuid.New(), Email: "a@example.com"}
}

func TestAnalyzeText_PersistsMeetingAndTasks(t *testing.T) {
	repo := &fakeMeetingRepo{}
	svc := NewService(&fakeAnalyzer{result: sampleAnalysis()}, &fakeStorage{}, &fakeTranscriber{}, repo, &fakeFileRepo{}, nil)

	user := testUser()
	res, err := svc.AnalyzeText(context.Background(), user, TextInput{Transcript: "Alice: hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Meeting.Title != "Roadmap review" {
		t.Errorf("title should fall back to analysis, got %q", res.Meeting.Title)
	}
	if res.Meeting.UserID != user.ID {
		t.Error("meeting must be owned by the requesting user")
	}
	if len(res.Tasks) != 2 {
		t.Fatalf("expected 2 suggested tasks, got %d", len(res.Tasks))
	}
	for _, task := range res.Tasks {
		if !task.Suggested {
			t.Error("analysis tasks must be flagged suggested")
		}
		if task.Status != entities.StatusBacklog {
			t.Errorf("analysis tasks must start in Backlog, got %q", task.Status)
		}
		if task.SourceMeetingID == nil || *task.SourceMeetingID != res.Meeting.ID {
			t.Error("task should reference the source meeting")
		}
	}

	ids, err := res.Meeting.GetTaskIDs()
	if err != nil {
		t.Fatalf("task ids not decodable: %v", err)
	}
	if len(ids) != 2 || ids[0] != res.Tasks[0].ID || ids[1] != res.Tasks[1].ID {
		t.Error("ordered task references should match created tasks")
	}
}

func TestAnalyzeText_RequestFieldsWin(t *testing.T) {
	repo := &fakeMeetingRepo{}
	svc := NewService(&fakeAnalyzer{result: sampleAnalysis()}, &fakeStorage{}, &fakeTranscriber{}, repo, &fakeFileRepo{}, nil)

	date := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	res, err := svc.AnalyzeText(context.Background(), testUser(), TextInput{
		Transcript: "Alice: hi",
		Title:      "Weekly sync",
		Date:       &date,
		Category:   "Standup",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Meeting.Title != "Weekly sync" || res.Meeting.Category != "Standup" || !res.Meeting.Date.Equal(date) {
		t.Errorf("request-supplied fields must override analysis: %+v", res.Meeting)
	}
}

func TestAnalyzeText_RejectsEmptyTranscript(t *testing.T) {
	svc := NewService(&fakeAnalyzer{}, &fakeStorage{}, &fakeTranscriber{}, &fakeMeetingRepo{}, &fakeFileRepo{}, nil)
	_, err := svc.AnalyzeText(context.Background(), testUser(), TextInput{})
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("expected 400 AppError, got %v", err)
	}
}

func TestAnalyzeText_NothingPersistsOnWriteFailure(t *testing.T) {
	repo := &fakeMeetingRepo{err: fmt.Errorf("connection reset")}
	svc := NewService(&fakeAnalyzer{result: sampleAnalysis()}, &fakeStorage{}, &fakeTranscriber{}, repo, &fakeFileRepo{}, nil)

	_, err := svc.AnalyzeText(context.Background(), testUser(), TextInput{Transcript: "Alice: hi"})
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.Code != apperrors.ErrorCode_DB_TRANSACTION_FAILED {
		t.Fatalf("expected DB_TRANSACTION_FAILED, got %v", err)
	}
	if repo.created != nil {
		t.Error("no meeting should be recorded when the transaction fails")
	}
}

func TestAnalyzeFile_TextFileFeedsAnalysisDirectly(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleAnalysis()}
	fileRepo := &fakeFileRepo{}
	store := &fakeStorage{result: &storage.UploadResult{ObjectKey: "123-notes.txt", URL: "https://signed/notes", SizeBytes: 9}}
	svc := NewService(analyzer, store, &fakeTranscriber{}, &fakeMeetingRepo{}, fileRepo, nil)

	res, err := svc.AnalyzeFile(context.Background(), testUser(), FileInput{
		Reader:      strings.NewReader("Alice: hi"),
		FileName:    "notes.txt",
		ContentType: "text/plain",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analyzer.got != "Alice: hi" {
		t.Errorf("file content should feed analysis, got %q", analyzer.got)
	}
	if res.Meeting.TranscriptFileID == nil {
		t.Error("text upload should link a transcript file")
	}
}

func TestAnalyzeFile_UploadFailureIsTolerated(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleAnalysis()}
	store := &fakeStorage{err: fmt.Errorf("bucket unreachable")}
	svc := NewService(analyzer, store, &fakeTranscriber{}, &fakeMeetingRepo{}, &fakeFileRepo{}, nil)

	res, err := svc.AnalyzeFile(context.Background(), testUser(), FileInput{
		Reader:      strings.NewReader("Alice: hi"),
		FileName:    "notes.txt",
		ContentType: "text/plain",
	})
	if err != nil {
		t.Fatalf("text analysis should survive a failed upload: %v", err)
	}
	if res.Meeting.TranscriptFileID != nil {
		t.Error("no file reference expected when the upload failed")
	}
}

func TestAnalyzeFile_AudioUsesTranscriber(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleAnalysis()}
	store := &fakeStorage{result: &storage.UploadResult{ObjectKey: "123-call.mp3", URL: "https://signed/call", SizeBytes: 4}}
	transcriber := &fakeTranscriber{configured: true, text: "Speaker A: hello"}
	svc := NewService(analyzer, store, transcriber, &fakeMeetingRepo{}, &fakeFileRepo{}, nil)

	res, err := svc.AnalyzeFile(context.Background(), testUser(), FileInput{
		Reader:      strings.NewReader("data"),
		FileName:    "call.mp3",
		ContentType: "audio/mpeg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analyzer.got != "Speaker A: hello" {
		t.Errorf("transcribed text should feed analysis, got %q", analyzer.got)
	}
	if res.Meeting.VideoFileID == nil {
		t.Error("audio upload should link a recording file")
	}
}

func TestAnalyzeFile_AudioRejectedWithoutTranscriber(t *testing.T) {
	store := &fakeStorage{result: &storage.UploadResult{ObjectKey: "k", URL: "u"}}
	svc := NewService(&fakeAnalyzer{result: sampleAnalysis()}, store, &fakeTranscriber{configured: false}, &fakeMeetingRepo{}, &fakeFileRepo{}, nil)

	_, err := svc.AnalyzeFile(context.Background(), testUser(), FileInput{
		Reader:      strings.NewReader("data"),
		FileName:    "call.mp3",
		ContentType: "audio/mpeg",
	})
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("expected 400 AppError, got %v", err)
	}
}

func TestAnalyzeFile_ExistingFileReference(t *testing.T) {
	user := testUser()
	fileRepo := &fakeFileRepo{}
	existing := entities.NewFile(user.ID, "123-notes.txt", 9, entities.FileTypeText)
	_ = fileRepo.Create(context.Background(), existing)

	svc := NewService(&fakeAnalyzer{result: sampleAnalysis()}, &fakeStorage{}, &fakeTranscriber{}, &fakeMeetingRepo{}, fileRepo, nil)

	res, err := svc.AnalyzeFile(context.Background(), user, FileInput{
		FileID:     &existing.ID,
		Transcript: "Alice: hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Meeting.TranscriptFileID == nil || *res.Meeting.TranscriptFileID != existing.ID {
		t.Error("existing file should be linked to the meeting")
	}
}

func TestAnalyzeFile_ForeignFileReadsAsNotFound(t *testing.T) {
	fileRepo := &fakeFileRepo{}
	other := entities.NewFile(uuid.New(), "123-x.txt", 1, entities.FileTypeText)
	_ = fileRepo.Create(context.Background(), other)

	svc := NewService(&fakeAnalyzer{result: sampleAnalysis()}, &fakeStorage{}, &fakeTranscriber{}, &fakeMeetingRepo{}, fileRepo, nil)

	_, err := svc.AnalyzeFile(context.Background(), testUser(), FileInput{
		FileID:     &other.ID,
		Transcript: "Alice: hi",
	})
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 404 {
		t.Fatalf("ownership violation must read as 404, got %v", err)
	}
}
