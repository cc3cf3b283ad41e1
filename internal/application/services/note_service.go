package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

const (
	notesListCacheKey = "notes:list"

	// untitledNote is the fallback title for notes saved without one.
	untitledNote = "Untitled"
)

// NoteService handles note-related operations
type NoteService struct {
	noteRepo  ports.NoteRepository
	files     ports.AttachmentStore
	cache     ports.CacheRepository
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	logger    *logger.Logger
}

// NewNoteService creates a new note service. cache may be nil.
func NewNoteService(noteRepo ports.NoteRepository, files ports.AttachmentStore, cache ports.CacheRepository, cacheTTL time.Duration, logger *logger.Logger) *NoteService {
	return &NoteService{
		noteRepo:  noteRepo,
		files:     files,
		cache:     cache,
		cacheTTL:  cacheTTL,
		sanitizer: newBodyPolicy(),
		logger:    logger,
	}
}

// newBodyPolicy builds the sanitizer for note bodies. The editor embeds
// images as inline data URIs and recorded clips as playable video elements,
// so both survive sanitization; everything else active is stripped.
func newBodyPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowAttrs("style").OnElements("img")
	p.AllowElements("video", "source")
	p.AllowAttrs("controls", "src").OnElements("video")
	p.AllowAttrs("src", "type").OnElements("source")
	return p
}

// ListNotes returns all notes ordered descending by creation time.
func (s *NoteService) ListNotes(ctx context.Context) ([]*entities.Note, error) {
	if s.cache != nil {
		var cached []*entities.Note
		if err := s.cache.Get(ctx, notesListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	notes, err := s.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, notesListCacheKey, notes, s.cacheTTL); err != nil {
			s.logger.Warnw("Failed to cache note list", "error", err)
		}
	}

	return notes, nil
}

// CreateNote creates a new note. An empty title is stored as "Untitled" and
// the body is sanitized to safe display markup.
func (s *NoteService) CreateNote(ctx context.Context, req ports.SaveNoteRequest) (*entities.Note, error) {
	note := &entities.Note{
		Title:    req.Title,
		Body:     s.sanitizer.Sanitize(req.Body),
		DateTime: time.Now(),
	}
	if note.Title == "" {
		note.Title = untitledNote
	}
	if req.DateTime != nil {
		note.DateTime = *req.DateTime
	}

	if req.File != nil {
		name, err := s.files.Save(req.File.Filename, req.File.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		note.File = &name
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.evictListCache(ctx)
	s.logger.Infow("Note created", "note_id", note.ID, "title", note.Title)

	return note, nil
}

// UpdateNote performs a full-field replace of the writable note fields,
// preserving the stored attachment when no new file is supplied.
func (s *NoteService) UpdateNote(ctx context.Context, id uuid.UUID, req ports.SaveNoteRequest) (*entities.Note, error) {
	existing, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	existing.Title = req.Title
	if existing.Title == "" {
		existing.Title = untitledNote
	}
	existing.Body = s.sanitizer.Sanitize(req.Body)
	if req.DateTime != nil {
		existing.DateTime = *req.DateTime
	}

	if req.File != nil {
		name, err := s.files.Save(req.File.Filename, req.File.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		existing.File = &name
	}

	if err := s.noteRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.evictListCache(ctx)

	return existing, nil
}

// DeleteNote removes a note by id. Deleting an absent id succeeds.
func (s *NoteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.evictListCache(ctx)
	s.logger.Infow("Note deleted", "note_id", id)

	return nil
}

func (s *NoteService) evictListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, notesListCacheKey); err != nil {
		s.logger.Warnw("Failed to evict note list cache", "error", err)
	}
}
