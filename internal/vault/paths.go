package vault

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot indicates a path that resolves outside the directory an
// operation was scoped to.
var ErrOutsideRoot = errors.New("path escapes the target directory")

// EnsureWithin verifies that path stays inside root once both are made
// absolute. Rename destinations and backup paths are checked with this
// before anything touches the filesystem.
func EnsureWithin(root, path string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return nil
}
