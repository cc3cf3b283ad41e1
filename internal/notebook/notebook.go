// Package notebook holds the note editor buffer. The buffer is disjoint
// from the note list: edits only reach the server through the two-step
// RequestSave / ConfirmSave flow, and CancelSave discards them.
package notebook

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/pkg/client"
)

const untitled = "Untitled"

// API is the slice of the SDK the notebook needs. *client.Client satisfies it.
type API interface {
	ListNotes(ctx context.Context) ([]*entities.Note, error)
	CreateNote(ctx context.Context, params client.NoteParams) (*entities.Note, error)
	UpdateNote(ctx context.Context, id uuid.UUID, params client.NoteParams) (*entities.Note, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

// State is the editor buffer's save state.
type State int

const (
	// StateIdle means no save has been requested.
	StateIdle State = iota
	// StatePendingConfirmation means RequestSave was called and the buffer
	// waits for ConfirmSave or CancelSave.
	StatePendingConfirmation
)

// Buffer is the in-progress edit of one note.
type Buffer struct {
	Title string
	Body  string

	// Preview names the attachment kept as a reference, for files that are
	// not embedded inline.
	Preview string

	noteID uuid.UUID
	state  State
}

// Notebook mirrors the note list and owns the single edit buffer.
type Notebook struct {
	api    API
	notes  []*entities.Note
	buffer *Buffer
}

// New creates a notebook over the given API.
func New(api API) *Notebook {
	return &Notebook{api: api}
}

// Load refreshes the note list, newest first.
func (n *Notebook) Load(ctx context.Context) error {
	notes, err := n.api.ListNotes(ctx)
	if err != nil {
		return fmt.Errorf("load notebook: %w", err)
	}
	n.notes = notes
	return nil
}

// Notes returns the mirrored list in server order.
func (n *Notebook) Notes() []*entities.Note {
	return n.notes
}

// Open starts an edit buffer. Passing nil opens a blank buffer for a new
// note; passing an existing note copies its fields so list entries are never
// mutated by typing.
func (n *Notebook) Open(existing *entities.Note) *Buffer {
	buf := &Buffer{}
	if existing != nil {
		buf.Title = existing.Title
		buf.Body = existing.Body
		buf.noteID = existing.ID
	}
	n.buffer = buf
	return buf
}

// Buffer returns the open edit buffer, or nil.
func (n *Notebook) Buffer() *Buffer {
	return n.buffer
}

// RequestSave moves the buffer into the pending-confirmation state. Nothing
// is persisted until ConfirmSave.
func (n *Notebook) RequestSave() error {
	if n.buffer == nil {
		return fmt.Errorf("request save: no open buffer")
	}
	n.buffer.state = StatePendingConfirmation
	return nil
}

// State reports the buffer's save state.
func (b *Buffer) State() State {
	return b.state
}

// ConfirmSave persists the buffer: a create when it was opened blank, an
// update when it was opened from an existing note. An empty title becomes
// "Untitled". The buffer is closed on success.
func (n *Notebook) ConfirmSave(ctx context.Context) (*entities.Note, error) {
	buf := n.buffer
	if buf == nil || buf.state != StatePendingConfirmation {
		return nil, fmt.Errorf("confirm save: no pending save")
	}

	title := strings.TrimSpace(buf.Title)
	if title == "" {
		title = untitled
	}
	params := client.NoteParams{Title: title, Body: buf.Body}

	var (
		note *entities.Note
		err  error
	)
	if buf.noteID == uuid.Nil {
		note, err = n.api.CreateNote(ctx, params)
	} else {
		note, err = n.api.UpdateNote(ctx, buf.noteID, params)
	}
	if err != nil {
		return nil, fmt.Errorf("confirm save: %w", err)
	}

	n.replace(note)
	n.buffer = nil
	return note, nil
}

// CancelSave discards the buffer without persisting anything.
func (n *Notebook) CancelSave() {
	n.buffer = nil
}

// Delete removes a note on the server and from the mirror.
func (n *Notebook) Delete(ctx context.Context, id uuid.UUID) error {
	if err := n.api.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	for i, note := range n.notes {
		if note.ID == id {
			n.notes = append(n.notes[:i], n.notes[i+1:]...)
			break
		}
	}
	return nil
}

// Attach adds a file to the buffer. Images are embedded inline into the body
// as base64 data URIs at attach time; anything else is retained as a preview
// reference only.
func (b *Buffer) Attach(name, mime string, data []byte) {
	if strings.HasPrefix(mime, "image/") {
		uri := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
		b.Body += fmt.Sprintf(`<img src="%s" alt="%s" style="max-width:100%%;"/>`, uri, name)
		return
	}
	b.Preview = name
}

// AppendMediaClip appends a recorded clip to the body as a playable video
// reference.
func (b *Buffer) AppendMediaClip(src, mime string) {
	b.Body += fmt.Sprintf(`<video controls><source src="%s" type="%s"></video>`, src, mime)
}

func (n *Notebook) replace(note *entities.Note) {
	for i, existing := range n.notes {
		if existing.ID == note.ID {
			n.notes[i] = note
			return
		}
	}
	// New notes list newest first.
	n.notes = append([]*entities.Note{note}, n.notes...)
}
