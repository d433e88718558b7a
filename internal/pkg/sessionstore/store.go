// Package sessionstore persists the single signed-in-user record.
//
// The store holds exactly one key-value entry: the serialized current user
// (credential material already stripped), written on login/register, removed
// on logout, and read once at startup. It is intentionally the simplest
// possible durable store.
package sessionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/deniz/learnhub/internal/app/models"
)

// DefaultFileName is the fixed session-storage identifier.
const DefaultFileName = "session.json"

// Store reads and writes the durable session record.
type Store struct {
	path string
}

// NewStore creates a store rooted at dir. The directory is created when it
// does not exist yet.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &Store{path: filepath.Join(dir, DefaultFileName)}, nil
}

// Save writes the user as the current session record.
func (s *Store) Save(user models.User) error {
	data, err := json.Marshal(user.Sanitized())
	if err != nil {
		return fmt.Errorf("failed to serialize session record: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	return nil
}

// Load reads the current session record. It returns (nil, nil) when no
// session is persisted; the record is trusted as-is without re-validating
// credentials.
func (s *Store) Load() (*models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse session record: %w", err)
	}
	return &user, nil
}

// Clear removes the session record. Clearing an absent record is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session record: %w", err)
	}
	return nil
}
