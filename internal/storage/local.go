package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sparkmatch/sparkmatch/internal/config"
)

// FileInfo describes a stored media object.
type FileInfo struct {
	URL      string `json:"url"`
	Path     string `json:"-"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	FileName string `json:"file_name"`
}

// MediaStore is the storage backend for profile photos and reels.
type MediaStore interface {
	Upload(ctx context.Context, reader io.Reader, size int64, fileName, mimeType string) (*FileInfo, error)
	Delete(ctx context.Context, fileURL string) error
}

// LocalMediaStore keeps objects on the local filesystem and serves them
// under a static base URL.
type LocalMediaStore struct {
	basePath string
	baseURL  string
}

// NewLocalMediaStore creates the store and ensures the base directory exists.
func NewLocalMediaStore(cfg *config.Config) (*LocalMediaStore, error) {
	if err := os.MkdirAll(cfg.Storage.LocalPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %q: %w", cfg.Storage.LocalPath, err)
	}
	return &LocalMediaStore{
		basePath: cfg.Storage.LocalPath,
		baseURL:  strings.TrimSuffix(cfg.Storage.BaseURL, "/"),
	}, nil
}

// Upload writes the object under a unique name and returns its public URL.
func (s *LocalMediaStore) Upload(ctx context.Context, reader io.Reader, size int64, fileName, mimeType string) (*FileInfo, error) {
	ext := filepath.Ext(fileName)
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(mimeType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	objectName := uuid.NewString() + ext
	dstPath := filepath.Join(s.basePath, objectName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create object %q: %w", dstPath, err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, reader)
	if err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to write object: %w", err)
	}
	if size > 0 && written != size {
		os.Remove(dstPath)
		return nil, fmt.Errorf("object size mismatch: expected %d, wrote %d", size, written)
	}

	return &FileInfo{
		URL:      s.baseURL + "/" + url.PathEscape(objectName),
		Path:     dstPath,
		Size:     written,
		MimeType: mimeType,
		FileName: fileName,
	}, nil
}

// Delete removes the object behind a public URL. A missing object is not
// an error: the caller only cares that it is gone.
func (s *LocalMediaStore) Delete(ctx context.Context, fileURL string) error {
	objectName := fileURL
	if i := strings.LastIndex(fileURL, "/"); i >= 0 {
		objectName = fileURL[i+1:]
	}
	objectName, err := url.PathUnescape(objectName)
	if err != nil || objectName == "" {
		return fmt.Errorf("invalid object URL %q", fileURL)
	}

	err = os.Remove(filepath.Join(s.basePath, objectName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
