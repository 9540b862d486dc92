package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFilesystemStore(t *testing.T) {
	t.Run("creates the root directory", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "blobs")

		s, err := NewFilesystemStore(root)
		if err != nil {
			t.Fatalf("NewFilesystemStore() error = %v", err)
		}
		if _, err := os.Stat(root); err != nil {
			t.Errorf("root directory not created: %v", err)
		}
		if err := s.ValidateSetup(context.Background()); err != nil {
			t.Errorf("ValidateSetup() error = %v", err)
		}
	})

	t.Run("works with existing directory", func(t *testing.T) {
		if _, err := NewFilesystemStore(t.TempDir()); err != nil {
			t.Fatalf("NewFilesystemStore() error = %v", err)
		}
	})
}

func TestFilesystemStore_PutGet(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a blob under nested key", func(t *testing.T) {
		s, err := NewFilesystemStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemStore() error = %v", err)
		}

		locator, err := s.Put(ctx, "f1/d1.pdf", []byte("%PDF-1.4"))
		if err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if !strings.HasPrefix(locator, "file://") || !strings.HasSuffix(locator, "/f1/d1.pdf") {
			t.Errorf("locator = %q", locator)
		}

		data, err := s.Get(ctx, "f1/d1.pdf")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(data) != "%PDF-1.4" {
			t.Errorf("data = %q", data)
		}

		// No temp files left behind.
		entries, err := os.ReadDir(filepath.Join(s.root, "f1"))
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("len(entries) = %d, want 1", len(entries))
		}
	})

	t.Run("overwrite is idempotent", func(t *testing.T) {
		s, err := NewFilesystemStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemStore() error = %v", err)
		}

		if _, err := s.Put(ctx, "k.pdf", []byte("old")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if _, err := s.Put(ctx, "k.pdf", []byte("new")); err != nil {
			t.Fatalf("second Put() error = %v", err)
		}

		data, err := s.Get(ctx, "k.pdf")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(data) != "new" {
			t.Errorf("data = %q, want %q", data, "new")
		}
	})

	t.Run("get absent key fails", func(t *testing.T) {
		s, err := NewFilesystemStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemStore() error = %v", err)
		}

		if _, err := s.Get(ctx, "missing.pdf"); err == nil {
			t.Error("Get() expected error for absent key")
		}
	})
}

func TestFilesystemStore_Remove(t *testing.T) {
	ctx := context.Background()

	s, err := NewFilesystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystemStore() error = %v", err)
	}

	if _, err := s.Put(ctx, "f1/a.pdf", []byte("a")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := s.Put(ctx, "f1/b.pdf", []byte("b")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// Absent keys inside the batch are not an error.
	if err := s.Remove(ctx, []string{"f1/a.pdf", "f1/missing.pdf", "f1/b.pdf"}); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	for _, key := range []string{"f1/a.pdf", "f1/b.pdf"} {
		if _, err := s.Get(ctx, key); err == nil {
			t.Errorf("blob %s still present after Remove", key)
		}
	}

	if err := s.Remove(ctx, nil); err != nil {
		t.Errorf("Remove(nil) error = %v, want nil", err)
	}
}

func TestFilesystemStore_Resolve(t *testing.T) {
	ctx := context.Background()

	s, err := NewFilesystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystemStore() error = %v", err)
	}

	locator, err := s.Put(ctx, "f1/d1.pdf", []byte("x"))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	key, err := s.Resolve(locator)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if key != "f1/d1.pdf" {
		t.Errorf("key = %q, want %q", key, "f1/d1.pdf")
	}

	if _, err := s.Resolve("file:///elsewhere/f1/d1.pdf"); err == nil {
		t.Error("Resolve() expected error for locator outside the root")
	}
	if _, err := s.Resolve("mem://test/f1/d1.pdf"); err == nil {
		t.Error("Resolve() expected error for foreign scheme")
	}
}
