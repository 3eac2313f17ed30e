package document

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/internal/infrastructure/storage"
)

type fakeStorage struct {
	configured  bool
	upload      *storage.UploadResult
	uploadErr   error
	downloadURL string
	downloadErr error
	uploadCalls int
}

func (f *fakeStorage) Configured() bool { return f.configured }

func (f *fakeStorage) Upload(ctx context.Context, reader io.Reader, size int64, name, contentType string) (*storage.UploadResult, error) {
	f.uploadCalls++
	return f.upload, f.uploadErr
}

func (f *fakeStorage) DownloadURL(ctx context.Context, objectKey string) (string, error) {
	return f.downloadURL, f.downloadErr
}

type fakeSummarizer struct {
	summary string
	err     error
	gotText string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.gotText = text
	return f.summary, f.err
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

func testUser() *entities.User {
	return &entities.User{ID: uuid.New(), Email: "a@example.com"}
}

const maxBytes = int64(500 * 1024 * 1024)

func TestUpload_RejectsAtSizeLimit(t *testing.T) {
	svc := NewService(&fakeStorage{configured: true}, &fakeFileRepo{}, &fakeSummarizer{}, maxBytes, nil)

	_, err := svc.Upload(context.Background(), testUser(), UploadInput{
		Reader:   strings.NewReader("x"),
		FileName: "big.mp4",
		Size:     maxBytes,
	})
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("size == limit must be rejected with 400, got %v", err)
	}
}

func TestUpload_AcceptsJustUnderLimit(t *testing.T) {
	store := &fakeStorage{
		configured: true,
		upload:     &storage.UploadResult{ObjectKey: "123-big.mp4", URL: "https://signed/big", SizeBytes: maxBytes - 1},
	}
	svc := NewService(store, &fakeFileRepo{}, &fakeSummarizer{}, maxBytes, nil)

	res, err := svc.Upload(context.Background(), testUser(), UploadInput{
		Reader:      strings.NewReader("x"),
		FileName:    "big.mp4",
		ContentType: "video/mp4",
		Size:        maxBytes - 1,
	})
	if err != nil {
		t.Fatalf("size == limit-1 must be accepted: %v", err)
	}
	if res.ObjectKey != "123-big.mp4" || res.URL == "" {
		t.Errorf("unexpected response: %+v", res)
	}
}

func TestUpload_RecordsDetectedType(t *testing.T) {
	store := &fakeStorage{configured: true, upload: &storage.UploadResult{ObjectKey: "k", URL: "u", SizeBytes: 3}}
	repo := &fakeFileRepo{}
	svc := NewService(store, repo, &fakeSummarizer{}, maxBytes, nil)

	res, err := svc.Upload(context.Background(), testUser(), UploadInput{
		Reader:      strings.NewReader("abc"),
		FileName:    "call.mp3",
		ContentType: "audio/mpeg",
		Size:        3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.files[res.FileID].Type != entities.FileTypeAudio {
		t.Errorf("expected audio type, got %q", repo.files[res.FileID].Type)
	}
}

func TestUpload_StorageFailureIs500(t *testing.T) {
	store := &fakeStorage{configured: true, uploadErr: fmt.Errorf("connection refused")}
	svc := NewService(store, &fakeFileRepo{}, &fakeSummarizer{}, maxBytes, nil)

	_, err := svc.Upload(context.Background(), testUser(), UploadInput{
		Reader:   strings.NewReader("x"),
		FileName: "a.txt",
		Size:     1,
	})
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 500 {
		t.Fatalf("expected 500 AppError, got %v", err)
	}
}

func TestSummarizeFile_RejectsNonTextFile(t *testing.T) {
	svc := NewService(&fakeStorage{configured: true}, &fakeFileRepo{}, &fakeSummarizer{}, maxBytes, nil)

	_, err := svc.SummarizeFile(context.Background(), testUser(), UploadInput{
		Reader:      strings.NewReader("x"),
		FileName:    "clip.mp4",
		ContentType: "video/mp4",
		Size:        1,
	})
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("non-txt file must be rejected with 400, got %v", err)
	}
}

func TestSummarizeFile_RejectsEmptyFile(t *testing.T) {
	svc := NewService(&fakeStorage{configured: true}, &fakeFileRepo{}, &fakeSummarizer{}, maxBytes, nil)

	_, err := svc.SummarizeFile(context.Background(), testUser(), UploadInput{
		Reader:      strings.NewReader(""),
		FileName:    "empty.txt",
		ContentType: "text/plain",
	})
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("empty file must be rejected with 400, got %v", err)
	}
}

func TestSummarizeFile_StoresCopyAndReturnsLink(t *testing.T) {
	store := &fakeStorage{
		configured: true,
		upload:     &storage.UploadResult{ObjectKey: "123-notes.txt", URL: "https://signed/notes", SizeBytes: 11},
	}
	repo := &fakeFileRepo{}
	summarizer := &fakeSummarizer{summary: "A short recap."}
	svc := NewService(store, repo, summarizer, maxBytes, nil)

	res, err := svc.SummarizeFile(context.Background(), testUser(), UploadInput{
		Reader:      strings.NewReader("notes here."),
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        11,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary != "A short recap." {
		t.Errorf("unexpected summary %q", res.Summary)
	}
	if res.DownloadLink != "https://signed/notes" {
		t.Errorf("unexpected download link %q", res.DownloadLink)
	}
	if summarizer.gotText != "notes here." {
		t.Errorf("summarizer got %q", summarizer.gotText)
	}
	if res.FileID == nil || repo.files[*res.FileID].Type != entities.FileTypeText {
		t.Errorf("stored copy not recorded: %+v", res)
	}
}

func TestSummarizeFile_UploadFailureStillReturnsSummary(t *testing.T) {
	store := &fakeStorage{configured: true, uploadErr: fmt.Errorf("connection refused")}
	svc := NewService(store, &fakeFileRepo{}, &fakeSummarizer{summary: "A short recap."}, maxBytes, nil)

	res, err := svc.SummarizeFile(context.Background(), testUser(), UploadInput{
		Reader:      strings.NewReader("notes here."),
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        11,
	})
	if err != nil {
		t.Fatalf("upload failure must be tolerated: %v", err)
	}
	if res.Summary != "A short recap." {
		t.Errorf("unexpected summary %q", res.Summary)
	}
	if res.DownloadLink != "" || res.FileID != nil {
		t.Errorf("failed upload must not yield a link: %+v", res)
	}
	if res.Message == "" {
		t.Error("expected a message explaining the missing link")
	}
}

func TestDownloadURL_ForeignFileReadsAsNotFound(t *testing.T) {
	repo := &fakeFileRepo{}
	other := entities.NewFile(uuid.New(), "123-x.txt", 1, entities.FileTypeText)
	_ = repo.Create(context.Background(), other)

	svc := NewService(&fakeStorage{configured: true, downloadURL: "https://signed/x"}, repo, &fakeSummarizer{}, maxBytes, nil)

	_, err := svc.DownloadURL(context.Background(), testUser(), other.ID)
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 404 {
		t.Fatalf("foreign file must read as 404, got %v", err)
	}
}

func TestDownloadURL_MissingObjectReadsAsNotFound(t *testing.T) {
	user := testUser()
	repo := &fakeFileRepo{}
	file := entities.NewFile(user.ID, "123-gone.txt", 1, entities.FileTypeText)
	_ = repo.Create(context.Background(), file)

	// Storage resolves the object to nothing
	svc := NewService(&fakeStorage{configured: true, downloadURL: ""}, repo, &fakeSummarizer{}, maxBytes, nil)

	_, err := svc.DownloadURL(context.Background(), user, file.ID)
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 404 {
		t.Fatalf("unresolvable object must read as 404, got %v", err)
	}
}

func TestDownloadURL_Success(t *testing.T) {
	user := testUser()
	repo := &fakeFileRepo{}
	file := entities.NewFile(user.ID, "123-notes.txt", 1, entities.FileTypeText)
	_ = repo.Create(context.Background(), file)

	svc := NewService(&fakeStorage{configured: true, downloadURL: "https://signed/notes"}, repo, &fakeSummarizer{}, maxBytes, nil)

	url, err := svc.DownloadURL(context.Background(), user, file.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://signed/notes" {
		t.Errorf("unexpected url %q", url)
	}
}
