package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"playground-bot/internal/domain/user"
)

// PreferencesFile stores the preference table as a JSON object keyed by
// Telegram user id
type PreferencesFile struct {
	path string
}

var _ user.PreferencesSnapshotter = (*PreferencesFile)(nil)

// NewPreferencesFile creates a snapshotter for the file at path
func NewPreferencesFile(path string) *PreferencesFile {
	return &PreferencesFile{path: path}
}

// Path returns the backing file path
func (f *PreferencesFile) Path() string {
	return f.path
}

// LoadAll reads the file. Comments and trailing commas are accepted.
func (f *PreferencesFile) LoadAll(ctx context.Context) (map[user.TelegramID]user.Preferences, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	var all map[user.TelegramID]user.Preferences
	if err := json.Unmarshal(jsonc.ToJSON(data), &all); err != nil {
		return nil, fmt.Errorf("failed to decode preferences JSON: %w", err)
	}

	for id, p := range all {
		all[id] = p.Normalize()
	}
	if all == nil {
		all = make(map[user.TelegramID]user.Preferences)
	}

	return all, nil
}

const fileMode os.FileMode = 0o644

// SaveAll writes all to a temporary file next to the target and renames it
// into place
func (f *PreferencesFile) SaveAll(ctx context.Context, all map[user.TelegramID]user.Preferences) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences JSON: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	// CreateTemp uses 0600
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set preferences file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close preferences file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to replace preferences file: %w", err)
	}

	return nil
}
