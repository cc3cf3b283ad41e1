package ports

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	// Delete removes the task with the given id. Deleting an absent id is
	// not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all tasks ordered ascending by their scheduled time.
	List(ctx context.Context) ([]*entities.Task, error)
}

// NoteRepository defines the interface for note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all notes ordered descending by creation time.
	List(ctx context.Context) ([]*entities.Note, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

// RefreshToken is a persisted, hashed refresh token.
type RefreshToken struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// AuthRepository defines the interface for refresh token operations
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// AttachmentStore persists uploaded files and derives their public paths.
type AttachmentStore interface {
	// Save writes the upload under a generated collision-resistant name and
	// returns the stored filename.
	Save(originalName string, r io.Reader) (string, error)
	// PreviewPath derives the public path for a stored filename.
	PreviewPath(filename string) string
}
