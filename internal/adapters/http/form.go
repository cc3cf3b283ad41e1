package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/ports"
)

// ContextUserIDKey is the echo context key the auth middleware stores the
// authenticated user id under.
const ContextUserIDKey = "user_id"

func getUserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextUserIDKey).(uuid.UUID)
	return id, ok
}

// parseDateTime accepts the RFC 3339 timestamps clients submit. A blank or
// malformed value is treated as absent so the service picks the default.
func parseDateTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// formUpload extracts the optional "file" part of a multipart form. The
// returned cleanup must be called once the upload has been consumed.
func formUpload(c echo.Context) (*ports.Upload, func(), error) {
	noop := func() {}

	header, err := c.FormFile("file")
	if err != nil {
		// No file part, or not a multipart body at all. Either way the
		// request simply carries no attachment.
		return nil, noop, nil
	}

	src, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	return &ports.Upload{Filename: header.Filename, Reader: src}, func() { src.Close() }, nil
}
