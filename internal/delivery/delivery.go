// Package delivery hands finished export payloads to their destination.
// The only implementation writes named files under a download directory,
// the desktop equivalent of a browser save-as download.
package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink delivers a byte payload as a named download.
type Sink interface {
	Deliver(data []byte, mimeType, filename string) (string, error)
}

// DirectorySink writes payloads into a download directory. Payloads are
// staged in a temp file and renamed into place so a failed delivery never
// leaves a partial download behind; the temp file is removed on every exit
// path.
type DirectorySink struct {
	dir string
}

// NewDirectorySink creates a sink rooted at dir, creating it if needed.
func NewDirectorySink(dir string) (*DirectorySink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}
	return &DirectorySink{dir: dir}, nil
}

// Dir returns the download directory the sink writes into.
func (s *DirectorySink) Dir() string { return s.dir }

// Deliver writes the payload under its filename and returns the final path.
// When the filename is already taken a " (n)" suffix is appended, matching
// browser download semantics.
func (s *DirectorySink) Deliver(data []byte, mimeType, filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("delivery requires a filename")
	}

	tmp, err := os.CreateTemp(s.dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close staging file: %w", err)
	}

	finalPath, err := s.availablePath(filename)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to finalize download: %w", err)
	}
	committed = true

	return finalPath, nil
}

// availablePath resolves filename collisions with a numeric suffix:
// name.csv, name (1).csv, name (2).csv, ... A stat failure other than
// not-exist is propagated; retrying other candidates cannot succeed when the
// directory itself is unreadable.
func (s *DirectorySink) availablePath(filename string) (string, error) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	candidate := filepath.Join(s.dir, filename)
	for i := 1; ; i++ {
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to probe download path %s: %w", candidate, err)
		}
		candidate = filepath.Join(s.dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
	}
}
