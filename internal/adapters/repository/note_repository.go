package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
)

// NoteRepositoryImpl implements the NoteRepository interface
type NoteRepositoryImpl struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sqlx.DB) ports.NoteRepository {
	return &NoteRepositoryImpl{db: db}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entities.Note) error {
	query := `
		INSERT INTO notes (id, title, body, file, date_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.Title, note.Body, note.File, note.DateTime,
	).Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

func (r *NoteRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	query := `
		SELECT id, title, body, file, date_time, created_at, updated_at
		FROM notes
		WHERE id = $1`

	var note entities.Note
	err := r.db.GetContext(ctx, &note, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note by id: %w", err)
	}

	return &note, nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entities.Note) error {
	query := `
		UPDATE notes
		SET title = $2, body = $3, file = $4, date_time = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.Title, note.Body, note.File, note.DateTime,
	).Scan(&note.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrNoteNotFound
		}
		return fmt.Errorf("update note: %w", err)
	}

	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	return nil
}

func (r *NoteRepositoryImpl) List(ctx context.Context) ([]*entities.Note, error) {
	query := `
		SELECT id, title, body, file, date_time, created_at, updated_at
		FROM notes
		ORDER BY created_at DESC`

	notes := []*entities.Note{}
	if err := r.db.SelectContext(ctx, &notes, query); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}
