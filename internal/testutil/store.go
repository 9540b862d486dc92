package testutil

import (
	"context"
	"testing"

	"github.com/jipsifred/Vorlesungen/internal/database"
	"github.com/jipsifred/Vorlesungen/internal/database/migrations"
	"github.com/jipsifred/Vorlesungen/internal/library"
)

// NewTestStore creates an in-memory SQLite metadata store with the
// schema applied. The store is automatically closed when the test
// completes.
func NewTestStore(t *testing.T) library.MetadataStore {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.MigrateUp(sqlDB); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	store := database.NewSQLiteStoreFromDB(sqlDB)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// FailingMetadataStore wraps a MetadataStore and fails selected writes,
// for exercising partial-failure paths.
type FailingMetadataStore struct {
	library.MetadataStore
	FailPutDocument bool
	FailPutFolder   bool
}

func (s *FailingMetadataStore) PutDocument(ctx context.Context, doc *library.Document) error {
	if s.FailPutDocument {
		return errInjected
	}
	return s.MetadataStore.PutDocument(ctx, doc)
}

func (s *FailingMetadataStore) PutFolder(ctx context.Context, folder *library.Folder) error {
	if s.FailPutFolder {
		return errInjected
	}
	return s.MetadataStore.PutFolder(ctx, folder)
}
