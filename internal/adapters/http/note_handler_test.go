package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/application/services"
	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
)

func newNoteHandler(t *testing.T) (*NoteHandler, *fakeNoteRepo) {
	t.Helper()
	repo := newFakeNoteRepo()
	svc := services.NewNoteService(repo, &fakeFiles{}, nil, 0, logger.NewNop())
	return NewNoteHandler(svc, logger.NewNop()), repo
}

func TestCreateNoteJSON(t *testing.T) {
	h, repo := newNoteHandler(t)
	e := echo.New()

	payload := `{"title":"Trip ideas","body":"<p>Lisbon in May</p>","dateTime":"2026-02-10T08:00:00Z"}`
	rec, err := doRequest(e, http.MethodPost, "/api/notes", echo.MIMEApplicationJSON,
		strings.NewReader(payload), h.CreateNote)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var note entities.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &note); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if note.Title != "Trip ideas" {
		t.Errorf("title = %q", note.Title)
	}
	if !strings.Contains(note.Body, "Lisbon in May") {
		t.Errorf("body = %q", note.Body)
	}
	if note.File != nil {
		t.Errorf("file = %v, want nil for JSON create", note.File)
	}
	if len(repo.notes) != 1 {
		t.Errorf("repo holds %d notes, want 1", len(repo.notes))
	}
}

func TestCreateNoteEmptyTitleBecomesUntitled(t *testing.T) {
	h, _ := newNoteHandler(t)
	e := echo.New()

	rec, err := doRequest(e, http.MethodPost, "/api/notes", echo.MIMEApplicationJSON,
		strings.NewReader(`{"title":"","body":"plain text"}`), h.CreateNote)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var note entities.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &note); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if note.Title != "Untitled" {
		t.Errorf("title = %q, want Untitled", note.Title)
	}
}

func TestCreateNoteMultipartWithAttachment(t *testing.T) {
	h, _ := newNoteHandler(t)
	e := echo.New()

	body, ct := multipartBody(t, map[string]string{
		"title": "Scanned receipt",
		"body":  "<p>archive</p>",
	}, "receipt.pdf")

	rec, err := doRequest(e, http.MethodPost, "/api/notes", ct, body, h.CreateNote)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var note entities.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &note); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if note.File == nil || !strings.HasSuffix(*note.File, "receipt.pdf") {
		t.Errorf("file = %v, want stored receipt.pdf", note.File)
	}
}

func TestCreateNoteSanitizesScript(t *testing.T) {
	h, _ := newNoteHandler(t)
	e := echo.New()

	payload := `{"title":"x","body":"<p>keep</p><script>alert(1)</script>"}`
	rec, err := doRequest(e, http.MethodPost, "/api/notes", echo.MIMEApplicationJSON,
		strings.NewReader(payload), h.CreateNote)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var note entities.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &note); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if strings.Contains(note.Body, "script") {
		t.Errorf("body %q still carries script", note.Body)
	}
	if !strings.Contains(note.Body, "<p>keep</p>") {
		t.Errorf("body %q lost markup", note.Body)
	}
}

func TestUpdateNoteUnknownIDIsGenericFailure(t *testing.T) {
	h, _ := newNoteHandler(t)
	e := echo.New()

	id := "3a4d3226-0000-4000-8000-000000000000"
	_, err := doRequest(e, http.MethodPut, "/api/notes/"+id, echo.MIMEApplicationJSON,
		strings.NewReader(`{"title":"x","body":"y"}`), h.UpdateNote, "id", id)

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("err = %v, want HTTPError", err)
	}
	if he.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", he.Code)
	}
	if he.Message != "Failed to update note" {
		t.Errorf("message = %v", he.Message)
	}
}

func TestDeleteNoteRespondsWithMessage(t *testing.T) {
	h, repo := newNoteHandler(t)
	e := echo.New()

	rec, err := doRequest(e, http.MethodPost, "/api/notes", echo.MIMEApplicationJSON,
		strings.NewReader(`{"title":"gone soon","body":"x"}`), h.CreateNote)
	if err != nil {
		t.Fatalf("seed note: %v", err)
	}
	var created entities.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	rec, err = doRequest(e, http.MethodDelete, "/api/notes/"+created.ID.String(), "", nil,
		h.DeleteNote, "id", created.ID.String())
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Note deleted" {
		t.Errorf("message = %q", resp.Message)
	}
	if len(repo.notes) != 0 {
		t.Errorf("repo still holds %d notes", len(repo.notes))
	}
}

func TestListNotesNewestFirst(t *testing.T) {
	h, repo := newNoteHandler(t)
	e := echo.New()

	for _, title := range []string{"older", "newer"} {
		rec, err := doRequest(e, http.MethodPost, "/api/notes", echo.MIMEApplicationJSON,
			strings.NewReader(`{"title":"`+title+`","body":"x"}`), h.CreateNote)
		if err != nil {
			t.Fatalf("seed note: %v", err)
		}
		var created entities.Note
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode created: %v", err)
		}
	}
	// Force distinct creation times so ordering is observable.
	for _, n := range repo.notes {
		if n.Title == "newer" {
			n.CreatedAt = n.CreatedAt.Add(time.Second)
		}
	}

	rec, err := doRequest(e, http.MethodGet, "/api/notes", "", nil, h.ListNotes)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var notes []entities.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len = %d, want 2", len(notes))
	}
	if notes[0].Title != "newer" {
		t.Errorf("first note = %q, want newer", notes[0].Title)
	}
}
