package meeting

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

type fakeMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (f *fakeMeetingRepo) Create(ctx context.Context, m *entities.Meeting) error {
	f.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) CreateWithTasks(ctx context.Context, m *entities.Meeting, tasks []*entities.Task) error {
	f.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.Meeting, error) {
	m, ok := f.meetings[id]
	if !ok || m.UserID != userID {
		return nil, entities.ErrMeetingNotFound
	}
	return m, nil
}

func (f *fakeMeetingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error) {
	var out []*entities.Meeting
	for _, m := range f.meetings {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*entities.Meeting, error) {
	m, ok := f.meetings[id]
	if !ok || m.UserID != userID {
		return nil, entities.ErrMeetingNotFound
	}
	if title, ok := fields["title"].(string); ok {
		m.Title = title
	}
	if category, ok := fields["category"].(string); ok {
		m.Category = category
	}
	return m, nil
}

func (f *fakeMeetingRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m, ok := f.meetings[id]
	if !ok || m.UserID != userID {
		return entities.ErrMeetingNotFound
	}
	delete(f.meetings, id)
	return nil
}

func storedMeeting(t *testing.T, repo *fakeMeetingRepo, userID uuid.UUID) *entities.Meeting {
	t.Helper()
	m := entities.NewMeeting(userID, "Design review", time.Date(2026, 8, 20, 14, 0, 0, 0, time.UTC))
	m.Summary = "Reviewed the new layout."
	m.Category = "Design"
	if err := m.SetMOM([]entities.MOMItem{{Kind: entities.MOMKindDecision, Content: "Adopt layout B"}}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetTags([]string{"design", "ux"}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetTranscript([]entities.TranscriptSegment{{Speaker: "Alice", Content: "Layout B wins.", Timestamp: "01:00"}}); err != nil {
		t.Fatal(err)
	}
	repo.meetings[m.ID] = m
	return m
}

func TestCreate_RequiresTitleAndDate(t *testing.T) {
	svc := NewService(newFakeMeetingRepo(), nil)

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Date: time.Now()})
	if appErr, ok := err.(apperrors.AppError); !ok || appErr.HTTPCode != 400 {
		t.Fatalf("missing title must be 400, got %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), CreateInput{Title: "Sync"})
	if appErr, ok := err.(apperrors.AppError); !ok || appErr.HTTPCode != 400 {
		t.Fatalf("missing date must be 400, got %v", err)
	}
}

func TestGet_ForeignMeetingReadsAsNotFound(t *testing.T) {
	repo := newFakeMeetingRepo()
	m := storedMeeting(t, repo, uuid.New())
	svc := NewService(repo, nil)

	_, err := svc.Get(context.Background(), uuid.New(), m.ID)
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 404 {
		t.Fatalf("ownership violation must read as 404, got %v", err)
	}
}

func TestExport_JSONRoundTrip(t *testing.T) {
	repo := newFakeMeetingRepo()
	userID := uuid.New()
	m := storedMeeting(t, repo, userID)
	svc := NewService(repo, nil)

	export, err := svc.Export(context.Background(), userID, m.ID, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.ContentType != "application/json" || export.Meeting == nil {
		t.Fatalf("unexpected export: %+v", export)
	}

	// Everything persisted must survive an encode/decode cycle.
	b, err := json.Marshal(export.Meeting)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded entities.Meeting
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Title != m.Title || decoded.Summary != m.Summary {
		t.Error("exported meeting lost fields in round trip")
	}
	mom, err := decoded.GetMOM()
	if err != nil || len(mom) != 1 || mom[0].Kind != entities.MOMKindDecision {
		t.Errorf("mom did not survive round trip: %v %v", mom, err)
	}
}

func TestExport_DocumentContainsSections(t *testing.T) {
	repo := newFakeMeetingRepo()
	userID := uuid.New()
	m := storedMeeting(t, repo, userID)
	svc := NewService(repo, nil)

	export, err := svc.Export(context.Background(), userID, m.ID, "document")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"# Design review", "## Summary", "## Minutes", "Adopt layout B", "## Transcript", "Alice"} {
		if !strings.Contains(export.Document, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if !strings.HasSuffix(export.FileName, ".md") {
		t.Errorf("unexpected file name %q", export.FileName)
	}
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	repo := newFakeMeetingRepo()
	userID := uuid.New()
	m := storedMeeting(t, repo, userID)
	svc := NewService(repo, nil)

	_, err := svc.Export(context.Background(), userID, m.ID, "pdf")
	appErr, ok := err.(apperrors.AppError)
	if !ok || appErr.HTTPCode != 400 {
		t.Fatalf("unknown format must be 400, got %v", err)
	}
}

func TestDelete_LeavesNothingButIsScoped(t *testing.T) {
	repo := newFakeMeetingRepo()
	userID := uuid.New()
	m := storedMeeting(t, repo, userID)
	svc := NewService(repo, nil)

	if err := svc.Delete(context.Background(), uuid.New(), m.ID); err == nil {
		t.Fatal("foreign delete must fail")
	}
	if err := svc.Delete(context.Background(), userID, m.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}
