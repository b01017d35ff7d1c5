package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path.
// A bare file name needs nothing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// WriteAtomic streams write into path+".tmp" and renames it into place.
// On failure the temp file is removed and path is left untouched.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	tempFilePath := path + ".tmp"
	f, err := os.OpenFile(tempFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tempFilePath, err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tempFilePath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempFilePath)
		return fmt.Errorf("failed to close %s: %w", tempFilePath, err)
	}

	if err := os.Rename(tempFilePath, path); err != nil {
		os.Remove(tempFilePath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// CheckNonEmpty stats path and fails when the file is missing or empty.
// An empty file is removed.
func CheckNonEmpty(path string) (int64, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if fileInfo.Size() == 0 {
		os.Remove(path)
		return 0, fmt.Errorf("file %s is empty after writing", path)
	}
	return fileInfo.Size(), nil
}
