package storage

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorageSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	stored, err := s.Save(context.Background(), Upload{
		Filename: "photo.png",
		Content:  strings.NewReader("fake image bytes"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.URL, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(stored.URL, ".png"))
	data, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, s.Remove(context.Background(), stored.Path))
	_, err = os.Stat(stored.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStorageRemoveMissingFile(t *testing.T) {
	s, err := NewDiskStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)
	assert.Error(t, s.Remove(context.Background(), "no/such/file"))
}
