package ports

import (
	"context"
	"io"
)

// FileStore writes uploaded files and returns the public URL path they are
// served under. category groups files (e.g. "videos", "materials").
type FileStore interface {
	Save(ctx context.Context, category, fileName string, r io.Reader) (string, error)
}
