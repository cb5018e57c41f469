package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkmatch/sparkmatch/internal/config"
	"github.com/sparkmatch/sparkmatch/internal/storage"
)

func setupStore(t *testing.T) (*storage.LocalMediaStore, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.New()
	cfg.Storage.LocalPath = dir
	cfg.Storage.BaseURL = "/static/uploads"

	store, err := storage.NewLocalMediaStore(cfg)
	require.NoError(t, err)
	return store, dir
}

func TestUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	store, dir := setupStore(t)

	content := "fake image bytes"
	info, err := store.Upload(ctx, strings.NewReader(content), int64(len(content)), "selfie.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(info.URL, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(info.URL, ".jpg"))
	assert.Equal(t, int64(len(content)), info.Size)

	// the object landed on disk
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.NoError(t, store.Delete(ctx, info.URL))
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 0)

	// deleting again is not an error
	assert.NoError(t, store.Delete(ctx, info.URL))
}

func TestUploadSizeMismatch(t *testing.T) {
	ctx := context.Background()
	store, dir := setupStore(t)

	_, err := store.Upload(ctx, strings.NewReader("short"), 100, "clip.mp4", "video/mp4")
	require.Error(t, err)

	// nothing left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 0)
}

func TestUploadExtensionFromMime(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)

	info, err := store.Upload(ctx, strings.NewReader("x"), 1, "noext", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(info.URL, ".png"))
}
