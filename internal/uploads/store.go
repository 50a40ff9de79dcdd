// Package uploads validates and stores applicant resumes.
//
// Only the extension and the size are checked. Files are written under a freshly generated
// "{uuid}{ext}" name, so the original filename never touches the filesystem.
package uploads

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/jobboard/internal/shared"
)

// DefaultMaxSize is the resume size cap, 5 MiB.
const DefaultMaxSize int64 = 5 * 1024 * 1024

// DefaultExtensions are the accepted resume extensions.
var DefaultExtensions = []string{".pdf", ".doc", ".docx"}

// StoredFile is the handle returned for an accepted upload.
type StoredFile struct {
	Name             string // storage handle, "{uuid}{ext}"
	OriginalFilename string
	Extension        string
	Size             int64
}

// Store writes accepted resumes to a single directory.
type Store struct {
	dir     string
	allowed []string
	maxSize int64
}

// NewStore creates the upload directory if needed and returns a [Store].
// Extensions are matched case-insensitively and may be given with or without the leading dot.
func NewStore(dir string, allowed []string, maxSize int64) (*Store, error) {
	if len(allowed) == 0 {
		allowed = DefaultExtensions
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	normalized := make([]string, 0, len(allowed))
	for _, ext := range allowed {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create upload directory: %w", shared.ErrStoreUnavailable, err)
	}

	return &Store{dir: dir, allowed: normalized, maxSize: maxSize}, nil
}

// Dir returns the upload directory.
func (s *Store) Dir() string { return s.dir }

// MaxSize returns the size cap in bytes.
func (s *Store) MaxSize() int64 { return s.maxSize }

// Allowed returns the accepted extensions.
func (s *Store) Allowed() []string { return append([]string(nil), s.allowed...) }

// Validate checks the extension of filename and the size of the content without writing anything.
// It returns the lower-cased extension.
func (s *Store) Validate(filename string, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.allowedExt(ext) {
		return "", fmt.Errorf("%w. Allowed: %s", shared.ErrInvalidFileType, strings.Join(s.allowed, ", "))
	}
	if size > s.maxSize {
		return "", fmt.Errorf("%w: exceeds %s limit", shared.ErrFileTooLarge, humanSize(s.maxSize))
	}
	return ext, nil
}

// Accept validates the upload, then writes content under a new "{uuid}{ext}" name and syncs it to disk.
//
// It fails with [shared.ErrInvalidFileType] or [shared.ErrFileTooLarge] before anything is written.
func (s *Store) Accept(filename string, content []byte) (*StoredFile, error) {
	ext, err := s.Validate(filename, int64(len(content)))
	if err != nil {
		return nil, err
	}

	name := shared.GenerateID() + ext
	if err := writeFile(filepath.Join(s.dir, name), content); err != nil {
		return nil, fmt.Errorf("%w: failed to store upload: %w", shared.ErrStoreUnavailable, err)
	}

	return &StoredFile{
		Name:             name,
		OriginalFilename: filepath.Base(filename),
		Extension:        ext,
		Size:             int64(len(content)),
	}, nil
}

// Open reads a stored file. Names that are not a bare file name are rejected and a missing file
// fails with [shared.ErrNotFound].
func (s *Store) Open(name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: resume file %s", shared.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read upload: %w", shared.ErrStoreUnavailable, err)
	}
	return data, nil
}

// Remove deletes a stored file. Removing a missing file is not an error.
func (s *Store) Remove(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: failed to remove upload: %w", shared.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: resume file %q", shared.ErrNotFound, name)
	}
	return filepath.Join(s.dir, name), nil
}

func (s *Store) allowedExt(ext string) bool {
	for _, a := range s.allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// writeFile creates path exclusively, writes data and syncs before closing.
func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func humanSize(n int64) string {
	const mib = 1024 * 1024
	if n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
