// supabase.go - Store implementation backed by the Supabase storage REST API
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SupabaseConfig holds connection settings for a Supabase project.
type SupabaseConfig struct {
	URL        string // project base URL, e.g. https://xyz.supabase.co
	APIKey     string // service or anon key
	Bucket     string
	HTTPClient *http.Client
}

// SupabaseStore talks to the Supabase storage API for one bucket.
type SupabaseStore struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
}

// NewSupabaseStore creates a SupabaseStore.
func NewSupabaseStore(cfg SupabaseConfig) (*SupabaseStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIKey is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("Bucket is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &SupabaseStore{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		bucket:     cfg.Bucket,
		httpClient: httpClient,
	}, nil
}

type listRequest struct {
	Prefix string     `json:"prefix"`
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset,omitempty"`
	SortBy listSortBy `json:"sortBy"`
}

type listSortBy struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

type listEntry struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Metadata  *struct {
		Size int64 `json:"size"`
	} `json:"metadata"`
}

// List returns the objects under prefix, in the backend's order.
func (s *SupabaseStore) List(ctx context.Context, prefix string, opts ListOptions) ([]Object, error) {
	reqURL := fmt.Sprintf("%s/storage/v1/object/list/%s", s.baseURL, s.bucket)

	body, err := json.Marshal(listRequest{
		Prefix: prefix,
		Limit:  opts.Limit,
		Offset: opts.Offset,
		SortBy: listSortBy{Column: "name", Order: "asc"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal list request: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, reqURL, bytes.NewReader(body), "application/json", nil)
	if err != nil {
		return nil, err
	}

	var entries []listEntry
	if err := json.Unmarshal(resp, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal listing: %w", err)
	}

	objects := make([]Object, 0, len(entries))
	for _, e := range entries {
		// Folder placeholders come back without metadata.
		if e.Metadata == nil {
			continue
		}
		obj := Object{Name: e.Name, Size: e.Metadata.Size}
		if t, err := time.Parse(time.RFC3339, e.CreatedAt); err == nil {
			obj.CreatedAt = t
		}
		objects = append(objects, obj)
	}

	return objects, nil
}

// CreateSignedURL asks the backend for a time-limited download URL.
func (s *SupabaseStore) CreateSignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	reqURL := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", s.baseURL, s.bucket, path)

	body, err := json.Marshal(map[string]int{"expiresIn": int(expiresIn.Seconds())})
	if err != nil {
		return "", fmt.Errorf("marshal sign request: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, reqURL, bytes.NewReader(body), "application/json", nil)
	if err != nil {
		return "", err
	}

	var signed struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.Unmarshal(resp, &signed); err != nil {
		return "", fmt.Errorf("unmarshal signed URL: %w", err)
	}
	if signed.SignedURL == "" {
		return "", fmt.Errorf("backend returned no signed URL for %s", path)
	}

	// The API returns a path relative to /storage/v1.
	return s.baseURL + "/storage/v1" + signed.SignedURL, nil
}

// Upload stores an object at path. With opts.Upsert off, an occupied path is
// a hard error (ErrObjectExists).
func (s *SupabaseStore) Upload(ctx context.Context, path string, r io.Reader, opts UploadOptions) error {
	reqURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)

	headers := map[string]string{
		"x-upsert": fmt.Sprintf("%t", opts.Upsert),
	}
	if opts.CacheControl != "" {
		headers["cache-control"] = "max-age=" + opts.CacheControl
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.do(ctx, http.MethodPost, reqURL, r, contentType, headers)
	return err
}

// Remove deletes the objects at the given paths.
func (s *SupabaseStore) Remove(ctx context.Context, paths []string) error {
	reqURL := fmt.Sprintf("%s/storage/v1/object/%s", s.baseURL, s.bucket)

	body, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return fmt.Errorf("marshal remove request: %w", err)
	}

	_, err = s.do(ctx, http.MethodDelete, reqURL, bytes.NewReader(body), "application/json", nil)
	return err
}

func (s *SupabaseStore) do(ctx context.Context, method, reqURL string, body io.Reader, contentType string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, s.asError(resp.StatusCode, data)
	}

	return data, nil
}

// asError extracts the backend's message so it can be surfaced to the user.
func (s *SupabaseStore) asError(status int, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			msg = errResp.Message
		} else if errResp.Error != "" {
			msg = errResp.Error
		}
	}

	switch status {
	case http.StatusConflict:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrObjectExists, msg)
		}
		return ErrObjectExists
	case http.StatusNotFound:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, msg)
		}
		return ErrObjectNotFound
	}

	if msg != "" {
		return fmt.Errorf("supabase storage: %s", msg)
	}
	return fmt.Errorf("supabase storage: status %d", status)
}

var _ Store = (*SupabaseStore)(nil)
