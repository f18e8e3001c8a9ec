// Package forms implements the application-form manager: listing,
// uploading, downloading, and deleting the documents held for one client
// in the storage backend. The manager keeps no state of its own; every
// listing is a fresh read from the backend.
package forms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/appforms/backend/internal/models"
	"github.com/appforms/backend/internal/storage"
)

const (
	// MaxFileSize is the upload size ceiling (50 MiB).
	MaxFileSize = 52428800

	// SignedURLTTL is the validity window of issued download URLs.
	SignedURLTTL = time.Hour

	// listLimit caps how many entries a single listing fetches.
	listLimit = 100
)

// allowedTypes is the upload MIME allow-list.
var allowedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Validation failures. The messages are user-facing.
var (
	ErrFileTypeNotSupported = errors.New("File type not supported. Please upload PDF, Word, Excel, text, or image files.")
	ErrFileTooLarge         = errors.New("File size must be less than 50MB.")
)

// ValidateUpload checks a file against the MIME allow-list and size limit.
// It runs before any backend call.
func ValidateUpload(contentType string, size int64) error {
	if !allowedTypes[contentType] {
		return ErrFileTypeNotSupported
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// Manager mediates between the API layer and the storage backend for one
// bucket of application forms.
type Manager struct {
	store storage.Store
	now   func() time.Time
}

// NewManager creates a Manager on top of a storage backend.
func NewManager(store storage.Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// List fetches up to 100 entries under the client's folder and attaches a
// signed download URL to each. A failed signature leaves that entry's URL
// empty; the entry itself stays listed.
func (m *Manager) List(ctx context.Context, clientID string) ([]models.UploadedFile, error) {
	objects, err := m.store.List(ctx, clientID, storage.ListOptions{Limit: listLimit})
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	files := make([]models.UploadedFile, 0, len(objects))
	for _, obj := range objects {
		f := models.UploadedFile{
			Name:       obj.Name,
			Path:       clientID + "/" + obj.Name,
			Size:       obj.Size,
			UploadedAt: obj.CreatedAt,
		}
		if url, err := m.store.CreateSignedURL(ctx, f.Path, SignedURLTTL); err == nil {
			f.URL = url
		}
		files = append(files, f)
	}

	return files, nil
}

// Upload validates the file, derives a timestamped object name, and stores
// it under the client's folder. Overwriting an existing object is a hard
// backend error; there is no retry.
func (m *Manager) Upload(ctx context.Context, clientID, filename, contentType string, size int64, r io.Reader) (*models.UploadedFile, error) {
	if err := ValidateUpload(contentType, size); err != nil {
		return nil, err
	}

	now := m.now()
	name := DerivedName(filename, now)
	objectPath := clientID + "/" + name

	err := m.store.Upload(ctx, objectPath, r, storage.UploadOptions{
		ContentType:  contentType,
		CacheControl: "3600",
		Upsert:       false,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading file: %w", err)
	}

	return &models.UploadedFile{
		Name:       name,
		Path:       objectPath,
		Size:       size,
		UploadedAt: now.UTC(),
	}, nil
}

// Delete removes one object from the client's folder.
func (m *Manager) Delete(ctx context.Context, clientID, name string) error {
	if err := m.store.Remove(ctx, []string{clientID + "/" + name}); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

// DownloadURL issues a fresh signed URL for one object.
func (m *Manager) DownloadURL(ctx context.Context, clientID, name string) (string, error) {
	url, err := m.store.CreateSignedURL(ctx, clientID+"/"+name, SignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("signing download URL: %w", err)
	}
	return url, nil
}

var timestampReplacer = strings.NewReplacer(":", "-", ".", "-")

// DerivedName appends an ISO-8601 timestamp (colons and dots replaced) to
// the file's base name, before its extension. Retrying the same upload
// therefore produces a second object, never an overwrite.
func DerivedName(filename string, now time.Time) string {
	ts := timestampReplacer.Replace(now.UTC().Format("2006-01-02T15:04:05.000")) + "Z"

	ext := path.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	return base + "_" + ts + ext
}
