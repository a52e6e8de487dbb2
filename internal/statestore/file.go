package statestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFilePath is where the state file lives unless configured otherwise.
const DefaultFilePath = "/tmp/nhl_game_tracker_status.json"

// FileBlob stores the state in a single file, replaced atomically on write.
type FileBlob struct {
	path string
}

// NewFileBlob constructs a file-backed blob store at path.
func NewFileBlob(path string) *FileBlob {
	if path == "" {
		path = DefaultFilePath
	}
	return &FileBlob{path: path}
}

// Backend names the store for logs.
func (f *FileBlob) Backend() string { return "file" }

// Path exposes the file location.
func (f *FileBlob) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

func (f *FileBlob) Get(ctx context.Context) ([]byte, error) {
	_ = ctx
	if f == nil {
		return nil, errors.New("file store not configured")
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Set writes to a temp file in the same directory and renames it over the target.
func (f *FileBlob) Set(ctx context.Context, data []byte) error {
	_ = ctx
	if f == nil {
		return errors.New("file store not configured")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
