// Package session holds the explicit application-state object: the signed-in
// user and bearer token, persisted to a JSON state file, plus the in-memory
// theme toggle.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybook/core/internal/domain/entities"
)

// state is the persisted shape of a session.
type state struct {
	User  *entities.User `json:"user,omitempty"`
	Token string         `json:"token,omitempty"`
}

// Session is hydrated once at startup and persisted on every user change.
type Session struct {
	path string

	user  *entities.User
	token string

	// DarkMode is the theme toggle. It is never persisted.
	darkMode bool
}

// Load hydrates a session from the state file. A missing file yields a
// signed-out session; a corrupt file is an error.
func Load(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	s.user = st.User
	s.token = st.Token
	return s, nil
}

// User returns the signed-in user, or nil.
func (s *Session) User() *entities.User {
	return s.user
}

// Token returns the bearer token, or "".
func (s *Session) Token() string {
	return s.token
}

// SignedIn reports whether a user is present.
func (s *Session) SignedIn() bool {
	return s.user != nil
}

// SetUser stores the user and token after login or register and persists
// the state file.
func (s *Session) SetUser(user *entities.User, token string) error {
	s.user = user
	s.token = token
	return s.persist()
}

// SignOut clears the session and the state file. The returned value is the
// route the caller must navigate to: signing out always lands on the login
// entry point.
func (s *Session) SignOut() (string, error) {
	s.user = nil
	s.token = ""
	if err := s.persist(); err != nil {
		return "", err
	}
	return "/login", nil
}

// DarkMode reports the current theme.
func (s *Session) DarkMode() bool {
	return s.darkMode
}

// ToggleDarkMode flips the theme and returns the new value.
func (s *Session) ToggleDarkMode() bool {
	s.darkMode = !s.darkMode
	return s.darkMode
}

func (s *Session) persist() error {
	st := state{User: s.user, Token: s.token}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
