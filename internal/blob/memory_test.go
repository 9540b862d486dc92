package blob

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("put then get round-trip", func(t *testing.T) {
		s := NewMemoryStore("test")

		locator, err := s.Put(ctx, "f1/d1.pdf", []byte("content"))
		if err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if locator != "mem://test/f1/d1.pdf" {
			t.Errorf("locator = %q", locator)
		}

		data, err := s.Get(ctx, "f1/d1.pdf")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(data) != "content" {
			t.Errorf("data = %q, want %q", data, "content")
		}
	})

	t.Run("put overwrites existing key", func(t *testing.T) {
		s := NewMemoryStore("test")

		if _, err := s.Put(ctx, "k", []byte("old")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if _, err := s.Put(ctx, "k", []byte("new")); err != nil {
			t.Fatalf("second Put() error = %v", err)
		}

		data, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(data) != "new" {
			t.Errorf("data = %q, want %q", data, "new")
		}
	})

	t.Run("get absent key fails", func(t *testing.T) {
		s := NewMemoryStore("test")

		if _, err := s.Get(ctx, "missing"); err == nil {
			t.Error("Get() expected error for absent key")
		}
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		s := NewMemoryStore("test")

		if _, err := s.Put(ctx, "k", []byte("x")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := s.Remove(ctx, []string{"k", "missing"}); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if err := s.Remove(ctx, []string{"k"}); err != nil {
			t.Errorf("second Remove() error = %v, want nil", err)
		}
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})

	t.Run("resolve inverts locators", func(t *testing.T) {
		s := NewMemoryStore("test")

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
	})

	t.Run("resolve rejects foreign locators", func(t *testing.T) {
		s := NewMemoryStore("test")

		for _, locator := range []string{"mem://other/f1/d1.pdf", "file:///tmp/x.pdf", "mem://test/"} {
			if _, err := s.Resolve(locator); err == nil {
				t.Errorf("Resolve(%q) expected error", locator)
			}
		}
	})

	t.Run("returned data is a copy", func(t *testing.T) {
		s := NewMemoryStore("test")

		if _, err := s.Put(ctx, "k", []byte("abc")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		data, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		data[0] = 'z'

		again, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("second Get() error = %v", err)
		}
		if string(again) != "abc" {
			t.Errorf("stored blob mutated through returned slice: %q", again)
		}
	})
}
