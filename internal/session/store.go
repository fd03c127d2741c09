package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the session to a JSON file under the user's config
// directory, the desktop analog of the browser's credential store: read on
// boot, written on login, removed on logout.
type Store struct {
	path string
}

// NewStore builds a store rooted at the given file path. An empty path
// resolves to $XDG_CONFIG_HOME/dairydesk/session.json (or the OS
// equivalent).
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "dairydesk", "session.json")
	}
	return &Store{path: path}, nil
}

// Load reads the persisted session. A missing file yields a zero session and
// no error; callers decide whether an unauthenticated session is acceptable.
func (s *Store) Load() (Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session file: %w", err)
	}
	return sess, nil
}

// Save writes the session, creating parent directories as needed. The file
// holds a bearer token, hence the restrictive mode.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent file is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
