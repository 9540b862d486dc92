package testutil

import (
	"context"
	"errors"

	"github.com/jipsifred/Vorlesungen/internal/blob"
	"github.com/jipsifred/Vorlesungen/internal/library"
)

var errInjected = errors.New("injected failure")

// NewTestBlobStore creates an in-memory blob store for testing.
func NewTestBlobStore() *blob.MemoryStore {
	return blob.NewMemoryStore("test")
}

// RecordingBlobStore wraps a BlobStore, counts calls, and can be told
// to fail uploads or removals.
type RecordingBlobStore struct {
	library.BlobStore

	FailPut    bool
	FailRemove bool

	PutCalls    int
	RemoveCalls int
	RemovedKeys []string
}

// NewRecordingBlobStore wraps an in-memory blob store.
func NewRecordingBlobStore() *RecordingBlobStore {
	return &RecordingBlobStore{BlobStore: NewTestBlobStore()}
}

func (s *RecordingBlobStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	s.PutCalls++
	if s.FailPut {
		return "", errInjected
	}
	return s.BlobStore.Put(ctx, key, data)
}

func (s *RecordingBlobStore) Remove(ctx context.Context, keys []string) error {
	s.RemoveCalls++
	s.RemovedKeys = append(s.RemovedKeys, keys...)
	if s.FailRemove {
		return errInjected
	}
	return s.BlobStore.Remove(ctx, keys)
}
