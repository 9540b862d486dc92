package library

import "context"

// MetadataStore persists folder and document records. Lookups return
// nil (not an error) when a record is absent, and deletes of absent
// records succeed. The store does not enforce the folder→document
// cascade; that is the Service's responsibility.
type MetadataStore interface {
	// PutFolder writes a folder record, replacing any record with the
	// same id.
	PutFolder(ctx context.Context, folder *Folder) error

	// GetFolder returns the folder with the given id, or nil.
	GetFolder(ctx context.Context, id string) (*Folder, error)

	// GetAllFolders returns every folder ordered by creation time
	// descending. Ties are broken deterministically by id.
	GetAllFolders(ctx context.Context) ([]*Folder, error)

	// DeleteFolder removes a folder record. Absent ids are a no-op.
	DeleteFolder(ctx context.Context, id string) error

	// PutDocument writes a document record, replacing any record with
	// the same id.
	PutDocument(ctx context.Context, doc *Document) error

	// GetDocument returns the document with the given id, or nil.
	GetDocument(ctx context.Context, id string) (*Document, error)

	// GetDocumentsByFolder returns summaries of every document in the
	// folder, ordered by creation time descending (ties by id).
	GetDocumentsByFolder(ctx context.Context, folderID string) ([]DocumentSummary, error)

	// DeleteDocument removes a document record. Absent ids are a no-op.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteDocumentsByFolder removes every document record in the
	// folder in a single atomic operation where the backend supports
	// it, so a half-deleted folder is never observable.
	DeleteDocumentsByFolder(ctx context.Context, folderID string) error

	// Close releases the underlying store resources.
	Close() error
}
