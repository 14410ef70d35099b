// Package renamer performs the on-disk directory rename for a movie
// folder.
package renamer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrSourceMissing indicates the current folder does not exist on disk.
	ErrSourceMissing = errors.New("source directory does not exist")

	// ErrTargetExists indicates the destination folder already exists.
	ErrTargetExists = errors.New("target directory already exists")
)

// RenameDir renames the directory at oldPath to newName within the same
// parent directory and returns the new absolute path. newName is
// NFC-normalized so folder names compare consistently across
// filesystems with different normalization behavior.
func RenameDir(oldPath, newName string) (string, error) {
	newPath := filepath.Join(filepath.Dir(oldPath), norm.NFC.String(newName))

	if _, err := os.Stat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("rename %q: %w", oldPath, ErrSourceMissing)
		}
		return "", fmt.Errorf("stat %q: %w", oldPath, err)
	}
	if _, err := os.Stat(newPath); err == nil {
		return "", fmt.Errorf("rename to %q: %w", newPath, ErrTargetExists)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("rename %q to %q: %w", oldPath, newPath, err)
	}
	return newPath, nil
}
