// Package storage persists uploaded plan files on disk. The directory layout
// is part of the access-control model: a file is only reachable through the
// full (userID, planID, filename) tuple, and filenames are always
// server-generated.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidFilename indicates a requested filename that is not a bare
// basename. Rejected before any filesystem access.
type ErrInvalidFilename struct {
	Filename string
}

func (e *ErrInvalidFilename) Error() string {
	return fmt.Sprintf("invalid filename: %q", e.Filename)
}

// ErrFileNotFound indicates the resolved file does not exist.
type ErrFileNotFound struct {
	Filename string
}

func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("file not found: %s", e.Filename)
}

// Store manages files under a single root directory with the layout
// {userID}/{planID}/books/{uuid}.{ext}.
type Store struct {
	root string
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute storage root directory.
func (s *Store) Root() string {
	return s.root
}

// SafeBasename validates that name is a bare filename with no path
// separators or parent references. Returns the cleaned name or an error.
func SafeBasename(name string) (string, error) {
	if name == "" || name == "." {
		return "", &ErrInvalidFilename{Filename: name}
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", &ErrInvalidFilename{Filename: name}
	}
	if filepath.Base(name) != name {
		return "", &ErrInvalidFilename{Filename: name}
	}
	return name, nil
}

func (s *Store) bookDir(userID, planID string) string {
	return filepath.Join(s.root, userID, planID, "books")
}

// SaveBook writes r to a freshly generated filename under the user's plan
// directory and returns the stored filename. ext should include the leading
// dot; an empty ext defaults to ".pdf".
func (s *Store) SaveBook(userID, planID, ext string, r io.Reader) (string, int64, error) {
	if ext == "" {
		ext = ".pdf"
	}
	dir := s.bookDir(userID, planID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create plan directory: %w", err)
	}

	filename := uuid.New().String() + strings.ToLower(ext)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}
	return filename, n, nil
}

// OpenBook opens a stored file for reading. The filename is validated as a
// bare basename before any path is built.
func (s *Store) OpenBook(userID, planID, filename string) (*os.File, error) {
	name, err := SafeBasename(filename)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(s.bookDir(userID, planID), name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrFileNotFound{Filename: name}
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// RemoveBook deletes one stored file. Removing a file that does not exist is
// not an error.
func (s *Store) RemoveBook(userID, planID, filename string) error {
	name, err := SafeBasename(filename)
	if err != nil {
		return err
	}

	path := filepath.Join(s.bookDir(userID, planID), name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// RemovePlan deletes every file stored for a plan. Used by the plan-delete
// cascade so on-disk files are not orphaned.
func (s *Store) RemovePlan(userID, planID string) error {
	if userID == "" || planID == "" {
		return fmt.Errorf("userID and planID are required")
	}
	dir := filepath.Join(s.root, userID, planID)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove plan files: %w", err)
	}
	return nil
}
