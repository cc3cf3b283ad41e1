// Package client provides a typed Go SDK for the Daybook REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
)

// Client talks to a Daybook API server. It performs no retries; every
// failure is terminal for that call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the given base URL, e.g. "http://localhost:5001".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, typically after Login or Register.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is the error envelope the server renders for failed requests.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// TaskParams carries the writable fields of a task. Updates replace the whole
// record, so callers should populate every field they want to keep.
type TaskParams struct {
	Title       string
	Description string
	// Status selects the lane. The server maps a blank or unknown lane to
	// Pending, so leaving Status empty on an update resets the task's lane.
	Status   string
	DateTime *time.Time
	// Attachment is uploaded as the multipart "file" part when non-nil.
	Attachment *ports.Upload
}

// NoteParams carries the writable fields of a note.
type NoteParams struct {
	Title      string
	Body       string
	DateTime   *time.Time
	Attachment *ports.Upload
}

// Credentials are the login inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the account-creation inputs.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the server's authentication response.
type AuthResult struct {
	User         *entities.User `json:"user"`
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken,omitempty"`
}

// ListTasks fetches all tasks, ascending by scheduled time.
func (c *Client) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	var tasks []*entities.Task
	if err := c.doJSON(ctx, http.MethodGet, "/api/tasks", nil, "", &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, params TaskParams) (*entities.Task, error) {
	body, contentType, err := taskForm(params)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	var task entities.Task
	if err := c.doJSON(ctx, http.MethodPost, "/api/tasks", body, contentType, &task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// UpdateTask replaces the writable fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, params TaskParams) (*entities.Task, error) {
	body, contentType, err := taskForm(params)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	var task entities.Task
	if err := c.doJSON(ctx, http.MethodPut, "/api/tasks/"+id.String(), body, contentType, &task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

// DeleteTask deletes a task. Deleting an absent id is not an error.
func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/tasks/"+id.String(), nil, "", nil); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ListNotes fetches all notes, newest first.
func (c *Client) ListNotes(ctx context.Context) ([]*entities.Note, error) {
	var notes []*entities.Note
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes", nil, "", &notes); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// CreateNote creates a note. Without an attachment the note travels as JSON;
// with one it becomes a multipart form.
func (c *Client) CreateNote(ctx context.Context, params NoteParams) (*entities.Note, error) {
	body, contentType, err := noteBody(params)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	var note entities.Note
	if err := c.doJSON(ctx, http.MethodPost, "/api/notes", body, contentType, &note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}

// UpdateNote replaces the writable fields of a note.
func (c *Client) UpdateNote(ctx context.Context, id uuid.UUID, params NoteParams) (*entities.Note, error) {
	body, contentType, err := noteBody(params)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	var note entities.Note
	if err := c.doJSON(ctx, http.MethodPut, "/api/notes/"+id.String(), body, contentType, &note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &note, nil
}

// DeleteNote deletes a note. Deleting an absent id is not an error.
func (c *Client) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/notes/"+id.String(), nil, "", nil); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// Register creates an account and adopts the returned bearer token.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	body, err := jsonBody(reg)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", body, "application/json", &result); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	c.token = result.Token
	return &result, nil
}

// Login authenticates and adopts the returned bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	body, err := jsonBody(creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, "application/json", &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.token = result.Token
	return &result, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Error != "" {
			apiErr.Message = envelope.Error
		} else if envelope.Message != "" {
			apiErr.Message = envelope.Message
		}
	}
	return apiErr
}

func jsonBody(v interface{}) (io.Reader, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return &buf, nil
}

func taskForm(params TaskParams) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// Title and status always travel, even empty, so the server sees the
	// caller's exact intent rather than a partial form.
	fields := [][2]string{
		{"title", params.Title},
		{"status", params.Status},
	}
	if params.Description != "" {
		fields = append(fields, [2]string{"description", params.Description})
	}
	if params.DateTime != nil {
		fields = append(fields, [2]string{"dateTime", params.DateTime.Format(time.RFC3339)})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if params.Attachment != nil {
		fw, err := w.CreateFormFile("file", params.Attachment.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(fw, params.Attachment.Reader); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func noteBody(params NoteParams) (io.Reader, string, error) {
	if params.Attachment == nil {
		payload := map[string]string{
			"title": params.Title,
			"body":  params.Body,
		}
		if params.DateTime != nil {
			payload["dateTime"] = params.DateTime.Format(time.RFC3339)
		}
		body, err := jsonBody(payload)
		if err != nil {
			return nil, "", err
		}
		return body, "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("title", params.Title); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("body", params.Body); err != nil {
		return nil, "", err
	}
	if params.DateTime != nil {
		if err := w.WriteField("dateTime", params.DateTime.Format(time.RFC3339)); err != nil {
			return nil, "", err
		}
	}
	fw, err := w.CreateFormFile("file", params.Attachment.Filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, params.Attachment.Reader); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
