// Package filestore reads and writes single files under a fixed root.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when the name does not exist or is not a
	// regular file.
	ErrNotFound = errors.New("filestore: not found")

	// ErrOutsideRoot is returned for names that would resolve outside the
	// root directory.
	ErrOutsideRoot = errors.New("filestore: path outside root")
)

// Store is safe for concurrent use. It does not serialize a Get and a Put
// on the same name; the filesystem decides what a reader sees.
type Store struct {
	root string // absolute when it could be resolved
}

// New returns a Store rooted at dir. An empty dir means the working
// directory. dir is not checked for existence.
func New(dir string) *Store {
	root := dir
	if abs, err := filepath.Abs(dir); err == nil {
		root = abs
	}
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Root() string {
	return s.root
}

// Get returns the full contents of the regular file name.
func (s *Store) Get(name string) ([]byte, error) {
	full, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, name)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Put creates or truncates name and writes data to it.
func (s *Store) Put(name string, data []byte) error {
	full, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// resolve joins root and name and makes sure the result stays inside root.
// name is a single path element; separators are rejected outright.
func (s *Store) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}
	full := filepath.Join(s.root, name)
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}
	return full, nil
}
