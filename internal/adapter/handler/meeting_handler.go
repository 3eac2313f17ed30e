package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	meetingdto "github.com/meetscribe/meetscribe/internal/adapter/dto/meeting"
	"github.com/meetscribe/meetscribe/internal/usecase/ingestion"
	"github.com/meetscribe/meetscribe/internal/usecase/meeting"
)

// Meeting handles meeting HTTP requests
type Meeting struct {
	meetingService   *meeting.Service
	ingestionService *ingestion.Service
	logger           *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(meetingService *meeting.Service, ingestionService *ingestion.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService:   meetingService,
		ingestionService: ingestionService,
		logger:           logger,
	}
}

// AnalyzeText ingests a pasted transcript
// POST /api/meetings/analyze/text
func (h *Meeting) AnalyzeText(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingdto.AnalyzeTextRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("transcript is required"))
	}

	result, err := h.ingestionService.AnalyzeText(c.Request().Context(), user, ingestion.TextInput{
		Transcript: req.Transcript,
		Title:      req.Title,
		Date:       req.Date,
		Category:   req.Category,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, result)
}

// AnalyzeFile ingests an uploaded file (or a previously uploaded fileId)
// POST /api/meetings/analyze/file
func (h *Meeting) AnalyzeFile(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := ingestion.FileInput{
		Transcript: c.FormValue("transcript"),
		Title:      c.FormValue("title"),
		Category:   c.FormValue("category"),
	}
	if dateStr := c.FormValue("date"); dateStr != "" {
		if date, err := time.Parse(time.RFC3339, dateStr); err == nil {
			input.Date = &date
		}
	}
	if fileIDStr := c.FormValue("fileId"); fileIDStr != "" {
		fileID, err := uuid.Parse(fileIDStr)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid fileId"))
		}
		input.FileID = &fileID
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
		defer src.Close()
		input.Reader = src
		input.FileName = fileHeader.Filename
		input.ContentType = fileHeader.Header.Get("Content-Type")
		input.Size = fileHeader.Size
	}

	result, err := h.ingestionService.AnalyzeFile(c.Request().Context(), user, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, result)
}

// List returns the user's meetings, newest first
// GET /api/meetings
func (h *Meeting) List(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.meetingService.List(c.Request().Context(), user.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetings)
}

// Create creates a meeting manually
// POST /api/meetings
func (h *Meeting) Create(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingdto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("title and date are required"))
	}

	created, err := h.meetingService.Create(c.Request().Context(), user.ID, meeting.CreateInput{
		Title:    req.Title,
		Date:     req.Date,
		Duration: req.Duration,
		Category: req.Category,
		Summary:  req.Summary,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, created)
}

// Get returns a meeting with tasks and files expanded
// GET /api/meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, m)
}

// Update applies a merge-patch to a meeting
// PUT /api/meetings/:id
func (h *Meeting) Update(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingdto.UpdateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	m, err := h.meetingService.Update(c.Request().Context(), user.ID, id, req.Fields())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, m)
}

// Delete removes a meeting. Its tasks and files stay behind.
// DELETE /api/meetings/:id
func (h *Meeting) Delete(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "Meeting deleted"})
}

// Export renders a meeting as JSON or a minutes document
// GET /api/meetings/:id/export?format=json|document
func (h *Meeting) Export(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	export, err := h.meetingService.Export(c.Request().Context(), user.ID, id, c.QueryParam("format"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	if export.Meeting != nil {
		return c.JSON(http.StatusOK, export.Meeting)
	}
	return c.Blob(http.StatusOK, export.ContentType, []byte(export.Document))
}
