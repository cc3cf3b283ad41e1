package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrTitleRequired      = errors.New("title is required")
	ErrAttachmentTooLarge = errors.New("attachment exceeds size limit")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
)

// TaskStatus is one of the three fixed board lanes.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// Lanes returns the board lanes in display order.
func Lanes() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}
}

// Valid reports whether s names one of the three lanes.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// NormalizeStatus maps an incoming status string onto a lane. Empty or
// unrecognized values fall back to Pending.
func NormalizeStatus(raw string) TaskStatus {
	s := TaskStatus(raw)
	if !s.Valid() {
		return TaskStatusPending
	}
	return s
}

// Task represents a single board item.
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	File        *string    `json:"file" db:"file"`
	FilePreview *string    `json:"filePreview" db:"file_preview"`
	DateTime    time.Time  `json:"dateTime" db:"date_time"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Note represents a journal note. Body is display markup produced by the
// rich editor; it is sanitized before persistence.
type Note struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	File      *string   `json:"file" db:"file"`
	DateTime  time.Time `json:"dateTime" db:"date_time"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// User represents an account able to sign in.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
