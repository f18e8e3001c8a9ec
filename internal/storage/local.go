// local.go - Store implementation on the local filesystem, for development
// and air-gapped deployments. Signed URLs are HMAC capability URLs served
// by the /api/storage/raw route.
package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LocalStore keeps objects as plain files under dataDir, one directory per
// path prefix.
type LocalStore struct {
	dataDir string
	secret  string
	baseURL string
}

// NewLocalStore creates a LocalStore rooted at dataDir. baseURL is the
// externally reachable server address signed URLs are built against.
func NewLocalStore(dataDir, secret, baseURL string) (*LocalStore, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &LocalStore{
		dataDir: dataDir,
		secret:  secret,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// List returns the objects directly under prefix, sorted by name.
func (s *LocalStore) List(_ context.Context, prefix string, opts ListOptions) ([]Object, error) {
	dir, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []Object{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading folder: %w", err)
	}

	var objects []Object
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{
			Name:      e.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })

	if opts.Offset > 0 {
		if opts.Offset >= len(objects) {
			return []Object{}, nil
		}
		objects = objects[opts.Offset:]
	}
	if opts.Limit > 0 && len(objects) > opts.Limit {
		objects = objects[:opts.Limit]
	}

	return objects, nil
}

// CreateSignedURL builds a capability URL valid for expiresIn.
func (s *LocalStore) CreateSignedURL(_ context.Context, path string, expiresIn time.Duration) (string, error) {
	if _, err := s.resolve(path); err != nil {
		return "", err
	}

	expires := time.Now().Add(expiresIn).Unix()
	token := SignToken(path, expires, s.secret)

	return fmt.Sprintf("%s/api/storage/raw?path=%s&expires=%d&token=%s",
		s.baseURL, url.QueryEscape(path), expires, token), nil
}

// Upload writes an object at path. With opts.Upsert off, an occupied path
// returns ErrObjectExists.
func (s *LocalStore) Upload(_ context.Context, path string, r io.Reader, opts UploadOptions) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}

	if !opts.Upsert {
		if _, err := os.Stat(full); err == nil {
			return fmt.Errorf("%w: %s", ErrObjectExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("creating object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return fmt.Errorf("writing object: %w", err)
	}

	return nil
}

// Remove deletes the objects at the given paths.
func (s *LocalStore) Remove(_ context.Context, paths []string) error {
	for _, p := range paths {
		full, err := s.resolve(p)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrObjectNotFound, p)
			}
			return fmt.Errorf("removing object: %w", err)
		}
	}
	return nil
}

// Open returns the content of a stored object for the raw route.
func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening object: %w", err)
	}
	return f, nil
}

// VerifyURL checks the HMAC token and expiry of a capability URL.
func (s *LocalStore) VerifyURL(path string, expires int64, token string) error {
	if !VerifyToken(path, expires, token, s.secret) {
		return fmt.Errorf("invalid token")
	}
	if time.Now().Unix() > expires {
		return fmt.Errorf("link expired")
	}
	return nil
}

// resolve maps a bucket-relative path onto the data directory, rejecting
// anything that would escape it.
func (s *LocalStore) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("invalid path: %s", path)
	}
	return filepath.Join(s.dataDir, clean), nil
}

// SignToken creates an HMAC signature over a path and expiration time.
func SignToken(path string, expires int64, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%s:%d", path, expires)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyToken checks a token against the expected HMAC signature.
func VerifyToken(path string, expires int64, token string, secret string) bool {
	expected := SignToken(path, expires, secret)
	return hmac.Equal([]byte(token), []byte(expected))
}

var _ Store = (*LocalStore)(nil)
