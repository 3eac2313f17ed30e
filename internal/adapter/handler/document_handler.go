package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/usecase/document"
)

// Document handles document upload/download HTTP requests
type Document struct {
	documentService *document.Service
	logger          *zap.Logger
}

// NewDocument creates a new document handler
func NewDocument(documentService *document.Service, logger *zap.Logger) *Document {
	return &Document{
		documentService: documentService,
		logger:          logger,
	}
}

// Upload stores a document in object storage
// POST /api/documents/upload (multipart: file, duration?)
func (h *Document) Upload(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer src.Close()

	input := document.UploadInput{
		Reader:      src,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
	}
	if durationStr := c.FormValue("duration"); durationStr != "" {
		if duration, err := strconv.ParseFloat(durationStr, 64); err == nil {
			input.DurationSeconds = &duration
		}
	}

	res, err := h.documentService.Upload(c.Request().Context(), user, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, res)
}

// Summarize generates a summary for an uploaded .txt file and stores a copy
// POST /api/documents/summarize (multipart: file)
func (h *Document) Summarize(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer src.Close()

	res, err := h.documentService.SummarizeFile(c.Request().Context(), user, document.UploadInput{
		Reader:      src,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, res)
}

// Download mints a fresh signed URL for a stored document
// GET /api/documents/download?fileId=
func (h *Document) Download(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileIDStr := c.QueryParam("fileId")
	if fileIDStr == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("fileId is required"))
	}
	fileID, err := uuid.Parse(fileIDStr)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid fileId"))
	}

	url, err := h.documentService.DownloadURL(c.Request().Context(), user, fileID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"url": url})
}
