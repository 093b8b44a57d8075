// Package storage implements the file store on the local filesystem.
// Uploaded files land under <dir>/<category>/ and are referenced by
// <baseURL>/<category>/<name> in stored documents.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes uploads to a directory on disk.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Save streams r to disk under a uuid-prefixed name so concurrent uploads
// of identically named files never collide, and returns the public URL.
func (s *LocalStore) Save(ctx context.Context, category, fileName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.dir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + "-" + sanitize(fileName)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.baseURL + "/" + category + "/" + name, nil
}

// sanitize strips any path components and collapses whitespace so the
// stored name is safe to serve.
func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Join(strings.Fields(name), "-")
}
