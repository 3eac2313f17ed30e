package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/internal/domain/repositories"
)

// Service handles meeting CRUD and export
type Service struct {
	meetingRepo repositories.MeetingRepository
	logger      *zap.Logger
}

// NewService creates a meeting service
func NewService(meetingRepo repositories.MeetingRepository, logger *zap.Logger) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		logger:      logger,
	}
}

// CreateInput is a manual meeting creation request
type CreateInput struct {
	Title    string
	Date     time.Time
	Duration string
	Category string
	Summary  string
}

// List returns the user's meetings, newest date first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list meetings", err)
	}
	return meetings, nil
}

// Get returns one meeting with tasks and files expanded
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, userID, id)
	if err != nil {
		if err == entities.ErrMeetingNotFound {
			return nil, errors.ErrMeetingNotFound(id.String())
		}
		return nil, errors.ErrDBQueryFailed("find meeting", err)
	}
	return meeting, nil
}

// Create creates a meeting manually (no analysis involved)
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*entities.Meeting, error) {
	if input.Title == "" {
		return nil, errors.ErrInvalidArgument("title is required")
	}
	if input.Date.IsZero() {
		return nil, errors.ErrInvalidArgument("date is required")
	}

	meeting := entities.NewMeeting(userID, input.Title, input.Date)
	if input.Duration != "" {
		meeting.Duration = input.Duration
	}
	meeting.Category = input.Category
	meeting.Summary = input.Summary

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, errors.ErrDBQueryFailed("create meeting", err)
	}
	return meeting, nil
}

// Update applies a merge-patch to a meeting
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*entities.Meeting, error) {
	if len(fields) == 0 {
		return nil, errors.ErrInvalidArgument("no fields to update")
	}
	meeting, err := s.meetingRepo.Update(ctx, userID, id, fields)
	if err != nil {
		if err == entities.ErrMeetingNotFound {
			return nil, errors.ErrMeetingNotFound(id.String())
		}
		return nil, errors.ErrDBQueryFailed("update meeting", err)
	}
	return meeting, nil
}

// Delete removes a meeting. Tasks and files referencing it are left alone.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.meetingRepo.Delete(ctx, userID, id); err != nil {
		if err == entities.ErrMeetingNotFound {
			return errors.ErrMeetingNotFound(id.String())
		}
		return errors.ErrDBQueryFailed("delete meeting", err)
	}
	return nil
}

// Export produces a downloadable rendition of a meeting. Format "json"
// returns the full record; "document" renders a readable minutes document.
type Export struct {
	ContentType string
	FileName    string
	Meeting     *entities.Meeting // set for json exports
	Document    string            // set for document exports
}

// Export renders a meeting in the requested format
func (s *Service) Export(ctx context.Context, userID, id uuid.UUID, format string) (*Export, error) {
	meeting, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	switch format {
	case "", "json":
		return &Export{
			ContentType: "application/json",
			FileName:    exportFileName(meeting.Title, "json"),
			Meeting:     meeting,
		}, nil
	case "document":
		doc, err := renderDocument(meeting)
		if err != nil {
			return nil, errors.ErrInternal(err)
		}
		return &Export{
			ContentType: "text/markdown; charset=utf-8",
			FileName:    exportFileName(meeting.Title, "md"),
			Document:    doc,
		}, nil
	}
	return nil, errors.ErrInvalidArgument(fmt.Sprintf("unsupported export format %q", format))
}

// renderDocument builds a markdown minutes document from the meeting record
func renderDocument(m *entities.Meeting) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", m.Title)
	fmt.Fprintf(&sb, "**Date:** %s  \n", m.Date.Format("2006-01-02"))
	if m.Duration != "" {
		fmt.Fprintf(&sb, "**Duration:** %s  \n", m.Duration)
	}
	if m.Category != "" {
		fmt.Fprintf(&sb, "**Category:** %s  \n", m.Category)
	}

	tags, err := m.GetTags()
	if err != nil {
		return "", err
	}
	if len(tags) > 0 {
		fmt.Fprintf(&sb, "**Tags:** %s  \n", strings.Join(tags, ", "))
	}

	if m.Summary != "" {
		fmt.Fprintf(&sb, "\n## Summary\n\n%s\n", m.Summary)
	}

	mom, err := m.GetMOM()
	if err != nil {
		return "", err
	}
	if len(mom) > 0 {
		sb.WriteString("\n## Minutes\n\n")
		for _, item := range mom {
			fmt.Fprintf(&sb, "- **%s**: %s\n", item.Kind, item.Content)
		}
	}

	if len(m.Tasks) > 0 {
		sb.WriteString("\n## Tasks\n\n")
		for _, task := range m.Tasks {
			fmt.Fprintf(&sb, "- [%s] %s", task.Priority, task.Title)
			if task.Description != "" {
				fmt.Fprintf(&sb, ": %s", task.Description)
			}
			sb.WriteString("\n")
		}
	}

	segments, err := m.GetTranscript()
	if err != nil {
		return "", err
	}
	if len(segments) > 0 {
		sb.WriteString("\n## Transcript\n\n")
		for _, seg := range segments {
			if seg.Timestamp != "" {
				fmt.Fprintf(&sb, "**%s** (%s): %s\n\n", seg.Speaker, seg.Timestamp, seg.Content)
			} else {
				fmt.Fprintf(&sb, "**%s**: %s\n\n", seg.Speaker, seg.Content)
			}
		}
	}

	return sb.String(), nil
}

func exportFileName(title, ext string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		case r == ' ':
			return '-'
		}
		return '_'
	}, title)
	if safe == "" {
		safe = "meeting"
	}
	return fmt.Sprintf("%s.%s", safe, ext)
}
