package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/careerconnect/careerconnect/config"

	"github.com/goccy/go-json"
)

// SessionUser is the part of the account the API returns at login.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionData is what a SessionStore persists.
type SessionData struct {
	Token string       `json:"token"`
	User  *SessionUser `json:"user,omitempty"`
}

// SessionStore persists the session between runs.
type SessionStore interface {
	Load() (SessionData, error)
	Save(SessionData) error
	Clear() error
}

// Session holds the bearer token of the signed-in user. It is loaded once
// when opened and written through to its store on every change.
type Session struct {
	mu    sync.RWMutex
	data  SessionData
	store SessionStore
}

// OpenSession restores the session kept in store.
func OpenSession(store SessionStore) (*Session, error) {
	data, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{data: data, store: store}, nil
}

func (s *Session) Set(token string, user *SessionUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := SessionData{Token: token, User: user}
	if err := s.store.Save(data); err != nil {
		return err
	}
	s.data = data
	return nil
}

func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = SessionData{}
	return s.store.Clear()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token
}

// User returns the signed-in user, or nil.
func (s *Session) User() *SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.User == nil {
		return nil
	}
	u := *s.data.User
	return &u
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	u := s.User()
	return u != nil && u.Role == "admin"
}

// AuthHeader is the Authorization header value, or "" when signed out.
func (s *Session) AuthHeader() string {
	if t := s.Token(); t != "" {
		return "Bearer " + t
	}
	return ""
}

// MemoryStore keeps the session for the life of the process.
type MemoryStore struct {
	mu   sync.Mutex
	data SessionData
}

func (m *MemoryStore) Load() (SessionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *MemoryStore) Save(d SessionData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = d
	return nil
}

func (m *MemoryStore) Clear() error {
	return m.Save(SessionData{})
}

// FileStore keeps the session in a JSON file readable only by its owner.
type FileStore struct {
	Path string
}

// DefaultFileStore stores the session under the user's config directory.
func DefaultFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &FileStore{Path: filepath.Join(dir, config.GetName(), "session.json")}, nil
}

func (f *FileStore) Load() (SessionData, error) {
	var d SessionData
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return d, nil
		}
		return d, err
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return SessionData{}, err
	}
	return d, nil
}

func (f *FileStore) Save(d SessionData) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
