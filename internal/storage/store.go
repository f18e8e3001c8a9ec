package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectExists is returned by Upload when the target path is already
// occupied and upsert is disabled.
var ErrObjectExists = errors.New("object already exists")

// ErrObjectNotFound is returned when the target path holds no object.
var ErrObjectNotFound = errors.New("object not found")

// Object is one entry in a bucket listing.
type Object struct {
	Name      string
	Size      int64
	CreatedAt time.Time
}

// ListOptions controls pagination of a listing.
type ListOptions struct {
	Limit  int
	Offset int
}

// UploadOptions controls how an object is written.
type UploadOptions struct {
	ContentType  string
	CacheControl string
	// Upsert allows overwriting an existing object at the same path.
	// The form manager always leaves this off.
	Upsert bool
}

// Store is the narrow capability surface the form manager needs from a
// bucket backend. Paths are bucket-relative, e.g. "<clientId>/<name>".
type Store interface {
	List(ctx context.Context, prefix string, opts ListOptions) ([]Object, error)
	CreateSignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error)
	Upload(ctx context.Context, path string, r io.Reader, opts UploadOptions) error
	Remove(ctx context.Context, paths []string) error
}
