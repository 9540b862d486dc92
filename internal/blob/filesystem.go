package blob

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jipsifred/Vorlesungen/internal/library"
)

// FilesystemStore is the local embedded blob backend. Blobs live under
// a root directory at their storage key, so a key like
// "<folderID>/<docID>.pdf" becomes <root>/<folderID>/<docID>.pdf and
// the locator is a file:// URL the viewer can open directly.
type FilesystemStore struct {
	root string // absolute
}

// NewFilesystemStore creates a filesystem blob store rooted at root,
// creating the directory if needed.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving blob root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("creating blob root: %w", err)
	}
	return &FilesystemStore{root: abs}, nil
}

func (s *FilesystemStore) locator(key string) string {
	return "file://" + path.Join(filepath.ToSlash(s.root), key)
}

// Put stores data under key using an atomic write (temp file + rename),
// overwriting any existing blob.
func (s *FilesystemStore) Put(_ context.Context, key string, data []byte) (string, error) {
	dest := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("creating blob directory: %w", err)
	}

	// Temp file in the same directory so the rename stays atomic.
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return s.locator(key), nil
}

// Get retrieves the blob stored under key.
func (s *FilesystemStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob not found: %s", key)
		}
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return data, nil
}

// Remove deletes the given blobs. Absent keys are skipped; the first
// real failure is reported after all keys have been attempted.
func (s *FilesystemStore) Remove(_ context.Context, keys []string) error {
	var firstErr error
	for _, key := range keys {
		err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
		if err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("removing blob %s: %w", key, err)
		}
	}
	return firstErr
}

// Resolve recovers the storage key from a file:// locator issued by
// this store.
func (s *FilesystemStore) Resolve(locator string) (string, error) {
	prefix := "file://" + filepath.ToSlash(s.root) + "/"
	key, ok := strings.CutPrefix(locator, prefix)
	if !ok || key == "" {
		return "", fmt.Errorf("locator not issued by this store: %s", locator)
	}
	return key, nil
}

// ValidateSetup verifies that the blob root is an accessible directory.
func (s *FilesystemStore) ValidateSetup(_ context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("blob root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("blob root is not a directory: %s", s.root)
	}
	return nil
}

// Compile-time check that FilesystemStore implements library.BlobStore
var _ library.BlobStore = (*FilesystemStore)(nil)
