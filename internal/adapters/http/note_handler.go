package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// NoteHandler handles note CRUD requests
type NoteHandler struct {
	noteService ports.NoteService
	logger      *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService ports.NoteService, logger *logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// noteRequest is the JSON shape for note writes. Inline media travels
// embedded in the body, so a "file" field sent as JSON is ignored; an
// attachment is only accepted through the multipart path.
type noteRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	DateTime string `json:"dateTime"`
}

// ListNotes returns all notes, newest first
// @Summary List all notes
// @Produce json
// @Success 200 {array} entities.Note
// @Failure 500 {object} ErrorResponse
// @Router /api/notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	notes, err := h.noteService.ListNotes(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List notes failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notes")
	}

	return c.JSON(http.StatusOK, notes)
}

// CreateNote creates a note from either a JSON or a multipart body
// @Summary Create a note
// @Accept json
// @Accept mpfd
// @Produce json
// @Success 201 {object} entities.Note
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/notes [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	req, cleanup, err := bindSaveNoteRequest(c)
	defer cleanup()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrAttachmentTooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Attachment too large")
		}
		h.logger.Errorw("Create note failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create note")
	}

	return c.JSON(http.StatusCreated, note)
}

// UpdateNote replaces the writable fields of a note
// @Summary Update a note
// @Accept json
// @Accept mpfd
// @Produce json
// @Success 200 {object} entities.Note
// @Failure 500 {object} ErrorResponse
// @Router /api/notes/{id} [put]
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update note")
	}

	req, cleanup, err := bindSaveNoteRequest(c)
	defer cleanup()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrAttachmentTooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Attachment too large")
		}
		h.logger.Errorw("Update note failed", "error", err, "note_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update note")
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note; deleting an absent id still succeeds
// @Summary Delete a note
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete note")
	}

	if err := h.noteService.DeleteNote(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete note failed", "error", err, "note_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete note")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Note deleted"})
}

func bindSaveNoteRequest(c echo.Context) (ports.SaveNoteRequest, func(), error) {
	noop := func() {}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		req := ports.SaveNoteRequest{
			Title: c.FormValue("title"),
			Body:  c.FormValue("body"),
		}
		if dt, ok := parseDateTime(c.FormValue("dateTime")); ok {
			req.DateTime = &dt
		}

		upload, cleanup, err := formUpload(c)
		if err != nil {
			return ports.SaveNoteRequest{}, cleanup, err
		}
		req.File = upload

		return req, cleanup, nil
	}

	var body noteRequest
	if err := c.Bind(&body); err != nil {
		return ports.SaveNoteRequest{}, noop, err
	}

	req := ports.SaveNoteRequest{Title: body.Title, Body: body.Body}
	if dt, ok := parseDateTime(body.DateTime); ok {
		req.DateTime = &dt
	}

	return req, noop, nil
}
