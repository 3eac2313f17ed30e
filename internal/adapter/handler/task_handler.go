package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	taskdto "github.com/meetscribe/meetscribe/internal/adapter/dto/task"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/internal/usecase/task"
)

// Task handles task HTTP requests
type Task struct {
	taskService *task.Service
	logger      *zap.Logger
}

// NewTask creates a new task handler
func NewTask(taskService *task.Service, logger *zap.Logger) *Task {
	return &Task{
		taskService: taskService,
		logger:      logger,
	}
}

// List returns the user's tasks, newest first
// GET /api/tasks
func (h *Task) List(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	tasks, err := h.taskService.List(c.Request().Context(), user.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, tasks)
}

// Create creates a task
// POST /api/tasks
func (h *Task) Create(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req taskdto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("title is required"))
	}

	created, err := h.taskService.Create(c.Request().Context(), user.ID, task.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        entities.TaskPriority(req.Priority),
		Status:          entities.TaskStatus(req.Status),
		Tags:            req.Tags,
		SourceMeetingID: req.SourceMeetingID,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, created)
}

// Update applies a merge-patch to a task
// PATCH /api/tasks/:id
func (h *Task) Update(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req taskdto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.Priority != nil && !entities.TaskPriority(*req.Priority).IsValid() {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid priority"))
	}
	if req.Status != nil && !entities.TaskStatus(*req.Status).IsValid() {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid status"))
	}

	updated, err := h.taskService.Update(c.Request().Context(), user.ID, id, req.Fields())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, updated)
}

// Delete removes a task
// DELETE /api/tasks/:id
func (h *Task) Delete(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.taskService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "Task deleted"})
}
