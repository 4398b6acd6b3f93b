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

// DiskStorage writes uploads under a local directory and derives public URLs
// from a configured base.
type DiskStorage struct {
	dir        string
	publicBase string
}

func NewDiskStorage(dir, publicBase string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStorage{
		dir:        dir,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (s *DiskStorage) Save(ctx context.Context, upload Upload) (StoredFile, error) {
	name := uuid.New().String() + filepath.Ext(upload.Filename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return StoredFile{}, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, upload.Content); err != nil {
		os.Remove(path)
		return StoredFile{}, fmt.Errorf("write file: %w", err)
	}

	return StoredFile{
		URL:  s.publicBase + "/" + name,
		Path: path,
	}, nil
}

func (s *DiskStorage) Remove(ctx context.Context, path string) error {
	return os.Remove(path)
}
