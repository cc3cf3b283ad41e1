package ports

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ValidateToken(tokenString string) (*Claims, error)
}

// TaskService interface for task operations
type TaskService interface {
	ListTasks(ctx context.Context) ([]*entities.Task, error)
	CreateTask(ctx context.Context, req SaveTaskRequest) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req SaveTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// NoteService interface for note operations
type NoteService interface {
	ListNotes(ctx context.Context) ([]*entities.Note, error)
	CreateNote(ctx context.Context, req SaveNoteRequest) (*entities.Note, error)
	UpdateNote(ctx context.Context, id uuid.UUID, req SaveNoteRequest) (*entities.Note, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

// Request/Response Types

// Upload carries a single attachment sent with a create or update request.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// SaveTaskRequest is the full set of writable task fields. Create and update
// share it; update performs a full-field replace of everything listed here.
type SaveTaskRequest struct {
	Title       string
	Description *string
	Status      string
	DateTime    *time.Time
	File        *Upload
}

// SaveNoteRequest is the full set of writable note fields.
type SaveNoteRequest struct {
	Title    string
	Body     string
	DateTime *time.Time
	File     *Upload
}

// Auth related types
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User         *entities.User `json:"user"`
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken,omitempty"`
}

// Claims carries the validated identity extracted from an access token.
type Claims struct {
	UserID uuid.UUID
	Email  string
}
