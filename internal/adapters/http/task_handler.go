package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// TaskHandler handles task CRUD requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns all tasks ascending by scheduled time
// @Summary List all tasks
// @Produce json
// @Success 200 {array} entities.Task
// @Failure 500 {object} ErrorResponse
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a task from a multipart form
// @Summary Create a task
// @Accept mpfd
// @Produce json
// @Success 201 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	req, cleanup, err := bindSaveTaskRequest(c)
	defer cleanup()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrTitleRequired) {
			return echo.NewHTTPError(http.StatusBadRequest, "title is required")
		}
		if errors.Is(err, entities.ErrAttachmentTooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Attachment too large")
		}
		h.logger.Errorw("Create task failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

// UpdateTask replaces the writable fields of a task
// @Summary Update a task
// @Accept mpfd
// @Produce json
// @Success 200 {object} entities.Task
// @Failure 500 {object} ErrorResponse
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	// An unresolvable id is reported the same way as any storage failure.
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task")
	}

	req, cleanup, err := bindSaveTaskRequest(c)
	defer cleanup()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrAttachmentTooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Attachment too large")
		}
		h.logger.Errorw("Update task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task")
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task; deleting an absent id still succeeds
// @Summary Delete a task
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

func bindSaveTaskRequest(c echo.Context) (ports.SaveTaskRequest, func(), error) {
	req := ports.SaveTaskRequest{
		Title:  c.FormValue("title"),
		Status: c.FormValue("status"),
	}

	if v := c.FormValue("description"); v != "" {
		req.Description = &v
	}
	if dt, ok := parseDateTime(c.FormValue("dateTime")); ok {
		req.DateTime = &dt
	}

	upload, cleanup, err := formUpload(c)
	if err != nil {
		return ports.SaveTaskRequest{}, cleanup, err
	}
	req.File = upload

	return req, cleanup, nil
}
