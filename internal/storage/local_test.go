// local_test.go - Tests for the local filesystem store
package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "test-secret", "http://localhost:8080")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func mustUpload(t *testing.T, s *LocalStore, path, content string) {
	t.Helper()
	if err := s.Upload(context.Background(), path, strings.NewReader(content), UploadOptions{}); err != nil {
		t.Fatalf("Upload %s failed: %v", path, err)
	}
}

func TestNewLocalStore(t *testing.T) {
	t.Run("requires a signing secret", func(t *testing.T) {
		if _, err := NewLocalStore(t.TempDir(), "", "http://localhost"); err == nil {
			t.Error("expected error for empty secret")
		}
	})
}

func TestLocalStore_UploadAndList(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	mustUpload(t, store, "c1/b.pdf", "bbb")
	mustUpload(t, store, "c1/a.pdf", "a")
	mustUpload(t, store, "c2/z.pdf", "zzz")

	objects, err := store.List(ctx, "c1", ListOptions{Limit: 100})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objects))
	}
	if objects[0].Name != "a.pdf" || objects[1].Name != "b.pdf" {
		t.Errorf("listing not sorted by name: %v", objects)
	}
	if objects[0].Size != 1 || objects[1].Size != 3 {
		t.Errorf("unexpected sizes: %v", objects)
	}
}

func TestLocalStore_ListPagination(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	mustUpload(t, store, "c1/a.pdf", "x")
	mustUpload(t, store, "c1/b.pdf", "x")
	mustUpload(t, store, "c1/c.pdf", "x")

	objects, err := store.List(ctx, "c1", ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(objects) != 2 {
		t.Errorf("limit ignored: got %d objects", len(objects))
	}

	objects, err = store.List(ctx, "c1", ListOptions{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(objects) != 1 || objects[0].Name != "c.pdf" {
		t.Errorf("offset wrong: %v", objects)
	}
}

func TestLocalStore_ListMissingFolder(t *testing.T) {
	store := newLocalStore(t)

	objects, err := store.List(context.Background(), "nobody", ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(objects) != 0 {
		t.Errorf("expected empty listing, got %d", len(objects))
	}
}

func TestLocalStore_UploadNoOverwrite(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	mustUpload(t, store, "c1/a.pdf", "one")

	err := store.Upload(ctx, "c1/a.pdf", strings.NewReader("two"), UploadOptions{})
	if !errors.Is(err, ErrObjectExists) {
		t.Fatalf("expected ErrObjectExists, got %v", err)
	}

	// Upsert allows the overwrite.
	if err := store.Upload(ctx, "c1/a.pdf", strings.NewReader("two"), UploadOptions{Upsert: true}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
}

func TestLocalStore_Remove(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	mustUpload(t, store, "c1/a.pdf", "a")

	if err := store.Remove(ctx, []string{"c1/a.pdf"}); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	err := store.Remove(ctx, []string{"c1/a.pdf"})
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestLocalStore_SignedURL(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	mustUpload(t, store, "c1/a.pdf", "a")

	url, err := store.CreateSignedURL(ctx, "c1/a.pdf", time.Hour)
	if err != nil {
		t.Fatalf("CreateSignedURL failed: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/api/storage/raw?path=") {
		t.Errorf("unexpected URL shape: %q", url)
	}
	if !strings.Contains(url, "token=") || !strings.Contains(url, "expires=") {
		t.Errorf("URL missing token or expiry: %q", url)
	}
}

func TestTokenSigning(t *testing.T) {
	expires := time.Now().Add(time.Hour).Unix()
	token := SignToken("c1/a.pdf", expires, "s")

	if !VerifyToken("c1/a.pdf", expires, token, "s") {
		t.Error("valid token rejected")
	}
	if VerifyToken("c1/b.pdf", expires, token, "s") {
		t.Error("token valid for a different path")
	}
	if VerifyToken("c1/a.pdf", expires+1, token, "s") {
		t.Error("token valid for a different expiry")
	}
	if VerifyToken("c1/a.pdf", expires, token, "other") {
		t.Error("token valid under a different secret")
	}
}

func TestLocalStore_VerifyURL(t *testing.T) {
	store := newLocalStore(t)

	expires := time.Now().Add(time.Hour).Unix()
	token := SignToken("c1/a.pdf", expires, "test-secret")

	if err := store.VerifyURL("c1/a.pdf", expires, token); err != nil {
		t.Errorf("valid URL rejected: %v", err)
	}

	past := time.Now().Add(-time.Minute).Unix()
	expiredToken := SignToken("c1/a.pdf", past, "test-secret")
	if err := store.VerifyURL("c1/a.pdf", past, expiredToken); err == nil {
		t.Error("expired URL accepted")
	}

	if err := store.VerifyURL("c1/a.pdf", expires, "bogus"); err == nil {
		t.Error("forged token accepted")
	}
}

func TestLocalStore_PathTraversal(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	err := store.Upload(ctx, "../outside.txt", strings.NewReader("x"), UploadOptions{})
	if err == nil {
		t.Error("path traversal accepted on upload")
	}

	if _, err := store.Open("c1/../../etc/passwd"); err == nil {
		t.Error("path traversal accepted on open")
	}
}
