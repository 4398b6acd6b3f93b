package storage

import (
	"context"
	"io"
)

// Upload is a file received from a client, not yet persisted.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// StoredFile is the result of persisting an upload: a publicly resolvable
// URL and the backend location used later for deletion.
type StoredFile struct {
	URL  string
	Path string
}

// Storage persists uploaded attachment files.
type Storage interface {
	Save(ctx context.Context, upload Upload) (StoredFile, error)
	Remove(ctx context.Context, path string) error
}
