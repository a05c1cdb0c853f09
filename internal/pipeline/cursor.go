package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const cursorFileName = "cursor.json"

// Cursor records how far into a file the tailer has read, so a restarted
// pipeline resumes instead of reshipping from the start.
type Cursor struct {
	Path      string    `json:"path"`
	Offset    int64     `json:"offset"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CursorStore persists a Cursor as a JSON file in a directory.
type CursorStore struct {
	dir string
}

// NewCursorStore creates a CursorStore for the given directory.
func NewCursorStore(dir string) *CursorStore {
	return &CursorStore{dir: dir}
}

// Load retrieves the last saved cursor from disk.
// Returns a zero cursor and nil error if no cursor file exists.
func (s *CursorStore) Load(ctx context.Context) (Cursor, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Cursor{}, nil
		}
		return Cursor{}, err
	}

	var cur Cursor
	if err := json.Unmarshal(data, &cur); err != nil {
		return Cursor{}, err
	}
	return cur, nil
}

// Save persists the cursor atomically.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (s *CursorStore) Save(ctx context.Context, cur Cursor) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}

	path := s.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(cur, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// Path returns the full path to the cursor file.
func (s *CursorStore) Path() string {
	return filepath.Join(s.dir, cursorFileName)
}
