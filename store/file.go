package store

import (
	"context"
	"os"
	"path/filepath"
)

const (
	appDirName    = "airplane-seating"
	stateFileName = "state.json"
)

// FileBackend keeps the state document in a single JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend stores state at path, or in the user config directory when
// path is empty.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		var err error
		path, err = configPath(stateFileName)
		if err != nil {
			return nil, err
		}
	}
	return &FileBackend{path: path}, nil
}

func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the file atomically so a crash never leaves half a document.
func (b *FileBackend) Write(_ context.Context, payload []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, b.path)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
