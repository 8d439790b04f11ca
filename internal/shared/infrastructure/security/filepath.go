// Package security guards the files the planner reads and writes on behalf of the user.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPath is returned for a blank file path.
var ErrEmptyPath = errors.New("file path cannot be empty")

// forbiddenChars are shell metacharacters that never appear in a legitimate
// training data or export path.
var forbiddenChars = []string{";", "&", "|", "$", "`", "<", ">", "\n", "\r"}

// CleanPath rejects suspicious paths and returns an absolute, symlink-free
// version of path. Paths that do not exist yet are returned cleaned.
func CleanPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	for _, c := range forbiddenChars {
		if strings.Contains(path, c) {
			return "", fmt.Errorf("file path contains forbidden character %q: %s", c, path)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve file path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if errors.Is(err, os.ErrNotExist) {
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve file path: %w", err)
	}
	return resolved, nil
}

// Open opens an existing file after CleanPath accepts it.
func Open(path string) (*os.File, error) {
	clean, err := CleanPath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 - path is validated above
	return os.Open(clean)
}

// WriteFile writes data to path, creating missing parent directories.
// Existing files are replaced.
func WriteFile(path string, data []byte) error {
	clean, err := CleanPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(clean), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	// #nosec G306 - exported plans are meant to be shared
	return os.WriteFile(clean, data, 0o644)
}
