package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrNoSession is returned when no session has been persisted.
var ErrNoSession = errors.New("no stored session")

const sessionFileName = "session.json"

// sessionFile is the on-disk layout. The field names are the storage
// contract shared with the request gateway, which reads the token fresh
// from here on every outgoing request.
type sessionFile struct {
	Token string `json:"jwt_token,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// Storage persists the session to the local filesystem. The session
// store is the only writer; the gateway reads the token through
// the Token method.
type Storage struct {
	baseDir string
}

// NewStorage creates session storage rooted at baseDir.
// If baseDir is empty, uses ~/.loftier/
func NewStorage(baseDir string) (*Storage, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".loftier")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create loftier directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("session storage initialized")

	return &Storage{baseDir: baseDir}, nil
}

// Token returns the persisted bearer token, or the empty string when no
// session exists. Read errors are treated as "no token": an unreadable
// session must not make every request fail, it just makes them anonymous.
func (s *Storage) Token() string {
	f, err := s.load()
	if err != nil {
		return ""
	}
	return f.Token
}

// User returns the persisted user profile.
func (s *Storage) User() (*User, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	if f.User == nil {
		return nil, ErrNoSession
	}
	return f.User, nil
}

// WriteToken persists the token, preserving any stored user profile.
func (s *Storage) WriteToken(token string) error {
	f, err := s.load()
	if err != nil {
		f = &sessionFile{}
	}
	f.Token = token
	return s.save(f)
}

// WriteUser persists the user profile, preserving the stored token.
func (s *Storage) WriteUser(u *User) error {
	f, err := s.load()
	if err != nil {
		f = &sessionFile{}
	}
	f.User = u
	return s.save(f)
}

// Clear removes the persisted session entirely.
func (s *Storage) Clear() error {
	path := filepath.Join(s.baseDir, sessionFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *Storage) load() (*sessionFile, error) {
	path := filepath.Join(s.baseDir, sessionFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return &f, nil
}

// save writes the session file atomically via a temp file rename.
func (s *Storage) save(f *sessionFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	path := filepath.Join(s.baseDir, sessionFileName)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save session file: %w", err)
	}

	return nil
}
