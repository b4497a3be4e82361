package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// LocalStorage implements the Storage interface by persisting CV files in
// a configured directory.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

// Save writes the attachment under a randomized filename derived from the
// sanitized original name plus a uniqueness suffix.
func (s *LocalStorage) Save(ctx context.Context, att *Attachment) (string, error) {
	if err := ValidateAttachment(att); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return "", fmt.Errorf("local storage: mkdir failed: %w", err)
	}

	storedName := uniqueName(att.OriginalName)
	fullPath := filepath.Join(s.basePath, storedName)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("local storage: create file failed: %w", err)
	}
	defer out.Close()

	if _, err = io.Copy(out, att.Reader); err != nil {
		return "", fmt.Errorf("local storage: write failed: %w", err)
	}

	return storedName, nil
}

// Remove deletes a stored CV. A file that is already missing is not an
// error, so repeated deletes stay idempotent.
func (s *LocalStorage) Remove(ctx context.Context, storedName string) error {
	if storedName == "" || storedName != filepath.Base(storedName) {
		return ErrInvalidAttachment
	}
	fullPath := filepath.Join(s.basePath, storedName)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local storage: delete failed: %w", err)
	}
	return nil
}

// uniqueName strips anything outside word characters from the original
// base name and appends a random suffix.
func uniqueName(originalName string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	safe := unsafeChars.ReplaceAllString(base, "")
	if safe == "" {
		safe = "cv"
	}
	return safe + "-" + uuid.NewString() + ".pdf"
}
