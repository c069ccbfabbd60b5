// Package storage keeps uploaded files on the local filesystem under a single
// root directory.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidName = errors.New("invalid stored file name")

type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: filepath.Clean(root)}
}

func (store *FileStore) Root() string {
	return store.root
}

// Path returns the location of name inside the root. Names must be a single
// path element.
func (store *FileStore) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(store.root, name), nil
}

// Save writes content to a temp file in the root, syncs it and renames it to
// name, so a reader never sees a partial file. It returns the final path.
func (store *FileStore) Save(name string, content []byte) (string, error) {
	target, err := store.Path(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(store.root, 0o755); err != nil {
		return "", fmt.Errorf("create storage root: %w", err)
	}

	temp, err := os.CreateTemp(store.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tempPath := temp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := temp.Write(content); err != nil {
		_ = temp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := temp.Sync(); err != nil {
		_ = temp.Close()
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tempPath, target); err != nil {
		return "", fmt.Errorf("rename temp file: %w", err)
	}
	committed = true
	return target, nil
}

func (store *FileStore) Open(name string) (io.ReadCloser, error) {
	path, err := store.Path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Remove deletes name. A missing file is not an error.
func (store *FileStore) Remove(name string) error {
	path, err := store.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return ErrInvalidName
	}
	return nil
}
