package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
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

type fakeUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entities.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

type fakeAuthRepo struct {
	tokens map[string]*ports.RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: map[string]*ports.RefreshToken{}}
}

func (r *fakeAuthRepo) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.tokens[tokenHash] = &ports.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeAuthRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshToken, error) {
	t, ok := r.tokens[tokenHash]
	if !ok {
		return nil, entities.ErrTokenRevoked
	}
	return t, nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	delete(r.tokens, tokenHash)
	return nil
}

func (r *fakeAuthRepo) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	for hash, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, hash)
		}
	}
	return nil
}

// fakeFiles records saved attachments and hands out deterministic names.
type fakeFiles struct {
	saved []string
}

func (f *fakeFiles) Save(originalName string, r io.Reader) (string, error) {
	io.Copy(io.Discard, r)
	name := fmt.Sprintf("stored-%d-%s", len(f.saved), originalName)
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *fakeFiles) PreviewPath(filename string) string {
	return "/uploads/" + filename
}

// memCache is an in-process CacheRepository for service tests.
type memCache struct {
	entries map[string][]byte
	gets    int
	hits    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.gets++
	data, ok := c.entries[key]
	if !ok {
		return fmt.Errorf("cache miss")
	}
	c.hits++
	return json.Unmarshal(data, dest)
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}
