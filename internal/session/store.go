// Package session persists the user's authentication state across runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store handles persistence of the session.
type Store struct {
	path    string
	current Session
}

// NewStore creates a session store rooted at baseDir, typically the
// application's user config directory.
func NewStore(baseDir string) *Store {
	return &Store{
		path: filepath.Join(baseDir, "session.json"),
	}
}

// Path returns the absolute path of the session file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session from disk. A missing file is not an error; it
// leaves the store with an empty session.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.current = Session{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	s.current = sess
	return nil
}

// Save persists a session to disk and makes it current. The file holds the
// bearer token, so it is written with owner-only permissions.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.current = sess
	return nil
}

// Clear removes the session from memory and disk. Clearing an already empty
// store is fine.
func (s *Store) Clear() error {
	s.current = Session{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Current returns the session held in memory.
func (s *Store) Current() Session {
	return s.current
}

// Token returns the stored auth token, empty when logged out.
func (s *Store) Token() string {
	return s.current.Token
}
