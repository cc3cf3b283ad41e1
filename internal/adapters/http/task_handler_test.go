package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/application/services"
	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
)

func newTaskHandler(t *testing.T) (*TaskHandler, *fakeTaskRepo) {
	t.Helper()
	repo := newFakeTaskRepo()
	svc := services.NewTaskService(repo, &fakeFiles{}, nil, 0, logger.NewNop())
	return NewTaskHandler(svc, logger.NewNop()), repo
}

func multipartBody(t *testing.T, fields map[string]string, fileName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(fw, "attachment-bytes"); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func doRequest(e *echo.Echo, method, target, contentType string, body io.Reader, handler echo.HandlerFunc, pathParam ...string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(pathParam) == 2 {
		c.SetParamNames(pathParam[0])
		c.SetParamValues(pathParam[1])
	}
	return rec, handler(c)
}

func TestCreateTaskMultipart(t *testing.T) {
	h, repo := newTaskHandler(t)
	e := echo.New()

	body, ct := multipartBody(t, map[string]string{
		"title":       "Water the plants",
		"description": "balcony first",
		"status":      "In Progress",
		"dateTime":    "2026-03-01T09:00:00Z",
	}, "photo.jpg")

	rec, err := doRequest(e, http.MethodPost, "/api/tasks", ct, body, h.CreateTask)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var task entities.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if task.Title != "Water the plants" {
		t.Errorf("title = %q", task.Title)
	}
	if task.Status != entities.TaskStatusInProgress {
		t.Errorf("status = %q, want In Progress", task.Status)
	}
	if task.File == nil || !strings.HasSuffix(*task.File, "photo.jpg") {
		t.Errorf("file = %v, want stored photo.jpg", task.File)
	}
	if task.FilePreview == nil || !strings.HasPrefix(*task.FilePreview, "/uploads/") {
		t.Errorf("filePreview = %v, want /uploads/ prefix", task.FilePreview)
	}
	if len(repo.tasks) != 1 {
		t.Errorf("repo holds %d tasks, want 1", len(repo.tasks))
	}
}

func TestCreateTaskMissingTitle(t *testing.T) {
	h, _ := newTaskHandler(t)
	e := echo.New()

	body, ct := multipartBody(t, map[string]string{"description": "no title"}, "")
	_, err := doRequest(e, http.MethodPost, "/api/tasks", ct, body, h.CreateTask)

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("err = %v, want HTTPError", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", he.Code)
	}
}

func TestCreateTaskOversizeAttachmentRejected(t *testing.T) {
	repo := newFakeTaskRepo()
	files := &fakeFiles{saveErr: entities.ErrAttachmentTooLarge}
	svc := services.NewTaskService(repo, files, nil, 0, logger.NewNop())
	h := NewTaskHandler(svc, logger.NewNop())
	e := echo.New()

	body, ct := multipartBody(t, map[string]string{"title": "big one"}, "huge.bin")
	_, err := doRequest(e, http.MethodPost, "/api/tasks", ct, body, h.CreateTask)

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("err = %v, want HTTPError", err)
	}
	if he.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("code = %d, want 413", he.Code)
	}
	if len(repo.tasks) != 0 {
		t.Errorf("repo holds %d tasks after rejected upload", len(repo.tasks))
	}
}

func TestCreateTaskUnknownStatusDefaultsToPending(t *testing.T) {
	h, _ := newTaskHandler(t)
	e := echo.New()

	body, ct := multipartBody(t, map[string]string{"title": "x", "status": "Blocked"}, "")
	rec, err := doRequest(e, http.MethodPost, "/api/tasks", ct, body, h.CreateTask)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var task entities.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if task.Status != entities.TaskStatusPending {
		t.Errorf("status = %q, want Pending", task.Status)
	}
}

func TestListTasks(t *testing.T) {
	h, _ := newTaskHandler(t)
	e := echo.New()

	for _, title := range []string{"first", "second"} {
		body, ct := multipartBody(t, map[string]string{"title": title}, "")
		if _, err := doRequest(e, http.MethodPost, "/api/tasks", ct, body, h.CreateTask); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	rec, err := doRequest(e, http.MethodGet, "/api/tasks", "", nil, h.ListTasks)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var tasks []entities.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("len = %d, want 2", len(tasks))
	}
}

func TestUpdateTaskUnknownIDIsGenericFailure(t *testing.T) {
	h, _ := newTaskHandler(t)
	e := echo.New()

	body, ct := multipartBody(t, map[string]string{"title": "moved"}, "")
	_, err := doRequest(e, http.MethodPut, "/api/tasks/3a4d3226-0000-4000-8000-000000000000", ct, body,
		h.UpdateTask, "id", "3a4d3226-0000-4000-8000-000000000000")

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("err = %v, want HTTPError", err)
	}
	if he.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", he.Code)
	}
	if he.Message != "Failed to update task" {
		t.Errorf("message = %v", he.Message)
	}
}

func TestUpdateTaskMalformedIDIsGenericFailure(t *testing.T) {
	h, _ := newTaskHandler(t)
	e := echo.New()

	body, ct := multipartBody(t, map[string]string{"title": "moved"}, "")
	_, err := doRequest(e, http.MethodPut, "/api/tasks/not-a-uuid", ct, body, h.UpdateTask, "id", "not-a-uuid")

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("err = %v, want HTTPError", err)
	}
	if he.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", he.Code)
	}
}

func TestUpdateTaskChangesLane(t *testing.T) {
	h, repo := newTaskHandler(t)
	e := echo.New()

	body, ct := multipartBody(t, map[string]string{"title": "ship release", "status": "Pending"}, "")
	rec, err := doRequest(e, http.MethodPost, "/api/tasks", ct, body, h.CreateTask)
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	var created entities.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	body, ct = multipartBody(t, map[string]string{"title": "ship release", "status": "Done"}, "")
	rec, err = doRequest(e, http.MethodPut, "/api/tasks/"+created.ID.String(), ct, body,
		h.UpdateTask, "id", created.ID.String())
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	stored := repo.tasks[created.ID]
	if stored.Status != entities.TaskStatusDone {
		t.Errorf("stored status = %q, want Done", stored.Status)
	}
}

func TestDeleteTaskRespondsWithMessage(t *testing.T) {
	h, repo := newTaskHandler(t)
	e := echo.New()

	body, ct := multipartBody(t, map[string]string{"title": "temp"}, "")
	rec, err := doRequest(e, http.MethodPost, "/api/tasks", ct, body, h.CreateTask)
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	var created entities.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	rec, err = doRequest(e, http.MethodDelete, "/api/tasks/"+created.ID.String(), "", nil,
		h.DeleteTask, "id", created.ID.String())
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Task deleted" {
		t.Errorf("message = %q", resp.Message)
	}
	if len(repo.tasks) != 0 {
		t.Errorf("repo still holds %d tasks", len(repo.tasks))
	}

	// Deleting again is still a success.
	rec, err = doRequest(e, http.MethodDelete, "/api/tasks/"+created.ID.String(), "", nil,
		h.DeleteTask, "id", created.ID.String())
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("second delete status = %d, want 200", rec.Code)
	}
}
