package http

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
)

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*entities.Task
	err   error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uuid.UUID]*entities.Task{}}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	if r.err != nil {
		return r.err
	}
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *entities.Task) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now()
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) List(ctx context.Context) ([]*entities.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*entities.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

type fakeNoteRepo struct {
	notes map[uuid.UUID]*entities.Note
	err   error
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[uuid.UUID]*entities.Note{}}
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entities.Note) error {
	if r.err != nil {
		return r.err
	}
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	cp := *note
	r.notes[note.ID] = &cp
	return nil
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	if r.err != nil {
		return nil, r.err
	}
	n, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entities.Note) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.notes[note.ID]; !ok {
		return entities.ErrNoteNotFound
	}
	note.UpdatedAt = time.Now()
	cp := *note
	r.notes[note.ID] = &cp
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) List(ctx context.Context) ([]*entities.Note, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*entities.Note, 0, len(r.notes))
	for _, n := range r.notes {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeFiles struct {
	saved   int
	saveErr error
}

func (f *fakeFiles) Save(originalName string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.saved++
	return fmt.Sprintf("stored-%d-%s", f.saved, originalName), nil
}

func (f *fakeFiles) PreviewPath(filename string) string {
	return "/uploads/" + filename
}
