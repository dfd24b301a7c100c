package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"hospital-appointment-server/internal/models"
)

// Session holds the authenticated identity for the current user. The JSON
// keys match the fields the web client persists; their presence is the sole
// gate used by every access check.
type Session struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	Role        models.Role `json:"role"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	UserID      uint        `json:"userId"`
}

// SessionStore persists at most one session with explicit get/set/clear
// operations. A session is created at login, read on every protected call and
// destroyed at logout.
type SessionStore interface {
	Get() (*Session, error)
	Set(*Session) error
	Clear() error
}

// ErrNotAuthenticated is returned when no usable session exists. A missing
// session and a role-mismatched session are treated identically: both are
// terminal and send the user back to login.
var ErrNotAuthenticated = errors.New("not authenticated")

// FileSessionStore keeps the session as a JSON file, the local stand-in for
// browser storage.
type FileSessionStore struct {
	Path string

	mu sync.Mutex
}

// NewFileSessionStore creates a store backed by the given path.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{Path: path}
}

// Get returns the stored session, or nil when none exists.
func (s *FileSessionStore) Get() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Set persists the session, replacing any previous one.
func (s *FileSessionStore) Set(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}

// Clear destroys the stored session.
func (s *FileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemorySessionStore keeps the session in memory.
type MemorySessionStore struct {
	mu      sync.Mutex
	session *Session
}

// Get returns the stored session, or nil when none exists.
func (s *MemorySessionStore) Get() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, nil
}

// Set replaces the stored session.
func (s *MemorySessionStore) Set(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	return nil
}

// Clear destroys the stored session.
func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
