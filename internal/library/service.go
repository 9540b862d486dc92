package library

import (
	"context"
	"fmt"
	"strings"
)

// Service is the orchestration layer that composes the metadata store
// and the blob store into folder/document operations with referential
// integrity and cascading-delete guarantees. It is the sole writer of
// both stores and never hands raw store handles upward.
type Service struct {
	meta   MetadataStore
	blobs  BlobStore
	logger Logger
	clock  Clock
	idgen  IDGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(meta MetadataStore, blobs BlobStore, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		meta:   meta,
		blobs:  blobs,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
	}
}

// CreateFolder validates the title, constructs a folder with a fresh id
// and timestamp, and writes it. No side effect beyond the one write.
func (s *Service) CreateFolder(ctx context.Context, title, description string) (*Folder, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: folder title must not be empty", ErrValidation)
	}

	folder := &Folder{
		ID:          s.idgen.New(),
		Title:       title,
		Description: description,
		CreatedAt:   s.clock.Now().UnixMilli(),
	}
	if err := s.meta.PutFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("%w: writing folder: %v", ErrStorageWrite, err)
	}

	s.logger.Info("folder created", "id", folder.ID, "title", folder.Title)
	return folder, nil
}

// GetFolder returns the folder with the given id, or nil if absent.
func (s *Service) GetFolder(ctx context.Context, id string) (*Folder, error) {
	folder, err := s.meta.GetFolder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up folder: %w", err)
	}
	return folder, nil
}

// Folders returns all folders, newest first.
func (s *Service) Folders(ctx context.Context) ([]*Folder, error) {
	folders, err := s.meta.GetAllFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	return folders, nil
}

// CreateDocument validates its inputs, uploads the PDF, and only then
// writes the document record.
//
// Ordering: blob first, metadata second. Any metadata row that exists
// therefore has real content behind it; the reverse order would let the
// UI show a document with a broken PDF. If the metadata write fails
// after a successful upload, the blob is orphaned — that is logged and
// accepted rather than compensated, since an unreachable blob is
// harmless and upload is idempotent on retry.
func (s *Service) CreateDocument(ctx context.Context, folderID, title string, annotationJSON, pdfBytes []byte) (*Document, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: document title must not be empty", ErrValidation)
	}

	folder, err := s.meta.GetFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("looking up folder: %w", err)
	}
	if folder == nil {
		return nil, fmt.Errorf("%w: folder not found: %s", ErrValidation, folderID)
	}

	annotation, err := ParseAnnotation(annotationJSON)
	if err != nil {
		return nil, err
	}

	id := s.idgen.New()
	key := BlobKey(folderID, id)

	locator, err := s.blobs.Put(ctx, key, pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: uploading pdf: %v", ErrStorageWrite, err)
	}

	doc := &Document{
		ID:         id,
		FolderID:   folderID,
		Title:      title,
		CreatedAt:  s.clock.Now().UnixMilli(),
		PDFLocator: locator,
		Annotation: *annotation,
	}
	if err := s.meta.PutDocument(ctx, doc); err != nil {
		s.logger.Error("document metadata write failed after upload, blob orphaned",
			"key", key, "error", err)
		return nil, fmt.Errorf("%w: writing document: %v", ErrStorageWrite, err)
	}

	s.logger.Info("document created",
		"id", doc.ID, "folder", folderID, "title", title, "pages", len(annotation.Pages))
	return doc, nil
}

// GetDocument returns the full document with the given id, or nil.
func (s *Service) GetDocument(ctx context.Context, id string) (*Document, error) {
	doc, err := s.meta.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up document: %w", err)
	}
	return doc, nil
}

// Documents returns summaries of the folder's documents, newest first.
func (s *Service) Documents(ctx context.Context, folderID string) ([]DocumentSummary, error) {
	docs, err := s.meta.GetDocumentsByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

// DownloadPDF retrieves the PDF bytes behind a document's locator.
func (s *Service) DownloadPDF(ctx context.Context, doc *Document) ([]byte, error) {
	key, err := s.blobs.Resolve(doc.PDFLocator)
	if err != nil {
		return nil, fmt.Errorf("resolving locator: %w", err)
	}
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetching pdf: %w", err)
	}
	return data, nil
}

// DeleteDocument removes a document's blob and then its metadata row.
// Deleting an absent id is a no-op. Blob removal is best-effort: the
// metadata delete proceeds even if the blob was already gone, so the
// user-visible listing stays consistent.
//
// Removing the blob first minimizes the window where metadata exists
// without content; an interruption between the two steps leaves a
// dangling row whose broken locator is detected lazily by the viewer.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.meta.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("looking up document: %w", err)
	}
	if doc == nil {
		s.logger.Debug("document already absent", "id", id)
		return nil
	}

	if key, err := s.blobs.Resolve(doc.PDFLocator); err != nil {
		s.logger.Warn("cannot resolve blob key, skipping blob removal",
			"id", id, "locator", doc.PDFLocator, "error", err)
	} else if err := s.blobs.Remove(ctx, []string{key}); err != nil {
		s.logger.Warn("blob removal failed, continuing with metadata delete",
			"id", id, "key", key, "error", err)
	}

	if err := s.meta.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("%w: deleting document: %v", ErrStorageWrite, err)
	}

	s.logger.Info("document deleted", "id", id, "folder", doc.FolderID)
	return nil
}

// DeleteFolder removes a folder together with every document that
// references it: one batched blob removal, then the documents' metadata
// rows, then the folder row. The metadata store offers no declarative
// cascade, so the cascade lives here. Deleting an absent folder is a
// no-op.
//
// Blob keys follow the BlobKey convention, so the enumerated summaries
// are enough to address every blob without resolving locators. Failures
// inside the blob batch are logged and do not abort the metadata
// cascade: the priority is that no phantom document remains listed,
// even if some cleanup leaves unreachable blobs behind.
func (s *Service) DeleteFolder(ctx context.Context, id string) error {
	docs, err := s.meta.GetDocumentsByFolder(ctx, id)
	if err != nil {
		return fmt.Errorf("enumerating documents: %w", err)
	}

	if len(docs) > 0 {
		keys := make([]string, len(docs))
		for i, d := range docs {
			keys[i] = BlobKey(id, d.ID)
		}
		if err := s.blobs.Remove(ctx, keys); err != nil {
			s.logger.Warn("blob cleanup failed, continuing with metadata cascade",
				"folder", id, "count", len(keys), "error", err)
		}
	}

	if err := s.meta.DeleteDocumentsByFolder(ctx, id); err != nil {
		return fmt.Errorf("%w: deleting folder documents: %v", ErrStorageWrite, err)
	}
	if err := s.meta.DeleteFolder(ctx, id); err != nil {
		return fmt.Errorf("%w: deleting folder: %v", ErrStorageWrite, err)
	}

	s.logger.Info("folder deleted", "id", id, "documents", len(docs))
	return nil
}
