package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jipsifred/Vorlesungen/internal/blob"
	"github.com/jipsifred/Vorlesungen/internal/config"
	"github.com/jipsifred/Vorlesungen/internal/database"
	"github.com/jipsifred/Vorlesungen/internal/library"
	"github.com/jipsifred/Vorlesungen/internal/pdfinfo"
)

// App is the application layer between the CLI and the library
// service. It constructs all dependencies from config, exposes
// high-level operations that accept raw file paths, and manages the
// store lifecycle on Close.
type App struct {
	cfg     *config.Config
	meta    library.MetadataStore
	blobs   library.BlobStore
	service *library.Service
	gate    *Gate
	logger  *slogAdapter
	logFile *os.File
}

// NewApp builds an App from config. operation identifies the CLI
// command being run (e.g. "CreateFolder", "AddDocument") and tags every
// log line. The caller must defer Close.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	blobs, err := blob.NewStoreFromConfig(cfg.Blob)
	if err != nil {
		return nil, fmt.Errorf("creating blob store: %w", err)
	}

	if err := blobs.ValidateSetup(context.Background()); err != nil {
		return nil, fmt.Errorf("validating blob store: %w", err)
	}

	meta, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating metadata store: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		meta.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	adapter := &slogAdapter{l: logger}
	svc := library.NewService(meta, blobs, adapter, library.NewRealClock(), library.UUIDGenerator{})

	return &App{
		cfg:     cfg,
		meta:    meta,
		blobs:   blobs,
		service: svc,
		gate:    NewGate(cfg.Passcode),
		logger:  adapter,
		logFile: logFile,
	}, nil
}

// RequireUnlock enforces the session gate before any library operation,
// prompting on the terminal if a passcode is configured.
func (a *App) RequireUnlock() error {
	return a.gate.PromptUnlock()
}

// CreateFolder creates a folder with the given title and description.
func (a *App) CreateFolder(ctx context.Context, title, description string) (*library.Folder, error) {
	return a.service.CreateFolder(ctx, title, description)
}

// Folders returns all folders, newest first.
func (a *App) Folders(ctx context.Context) ([]*library.Folder, error) {
	return a.service.Folders(ctx)
}

// DeleteFolder deletes a folder and every document in it.
func (a *App) DeleteFolder(ctx context.Context, id string) error {
	return a.service.DeleteFolder(ctx, id)
}

// AddDocument reads the annotation and PDF files and creates a document
// in the given folder. The returned page count is the PDF's (0 when the
// PDF could not be inspected); annotation pages beyond it are logged as
// a warning but do not block creation.
func (a *App) AddDocument(ctx context.Context, folderID, title, annotationPath, pdfPath string) (*library.Document, int, error) {
	annotationJSON, err := os.ReadFile(annotationPath)
	if err != nil {
		return nil, 0, fmt.Errorf("reading annotation file: %w", err)
	}
	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, 0, fmt.Errorf("reading pdf file: %w", err)
	}

	pageCount, err := pdfinfo.PageCount(pdfBytes)
	if err != nil {
		a.logger.Warn("could not inspect pdf", "path", pdfPath, "error", err)
		pageCount = 0
	}

	doc, err := a.service.CreateDocument(ctx, folderID, title, annotationJSON, pdfBytes)
	if err != nil {
		return nil, 0, err
	}

	if pageCount > 0 {
		for _, p := range doc.Annotation.Pages {
			if p.PageNumber > pageCount {
				a.logger.Warn("annotation references page beyond pdf",
					"document", doc.ID, "page", p.PageNumber, "pdf_pages", pageCount)
			}
		}
	}

	return doc, pageCount, nil
}

// Documents returns summaries of the folder's documents, newest first.
func (a *App) Documents(ctx context.Context, folderID string) ([]library.DocumentSummary, error) {
	return a.service.Documents(ctx, folderID)
}

// Document returns the full document with the given id, or nil.
func (a *App) Document(ctx context.Context, id string) (*library.Document, error) {
	return a.service.GetDocument(ctx, id)
}

// DeleteDocument deletes a document and its PDF.
func (a *App) DeleteDocument(ctx context.Context, id string) error {
	return a.service.DeleteDocument(ctx, id)
}

// ExportPDF writes a document's PDF to destPath. Returns the number of
// bytes written.
func (a *App) ExportPDF(ctx context.Context, id, destPath string) (int, error) {
	doc, err := a.service.GetDocument(ctx, id)
	if err != nil {
		return 0, err
	}
	if doc == nil {
		return 0, fmt.Errorf("document not found: %s", id)
	}

	data, err := a.service.DownloadPDF(ctx, doc)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return 0, fmt.Errorf("writing pdf: %w", err)
	}
	return len(data), nil
}

// Page returns the annotation page n of the given document, or nil when
// the document has no notes for that page. The bool reports whether the
// document itself exists.
func (a *App) Page(ctx context.Context, id string, n int) (*library.PageContent, bool, error) {
	doc, err := a.service.GetDocument(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if doc == nil {
		return nil, false, nil
	}
	return doc.Annotation.FindPage(n), true, nil
}

// Close releases the metadata store and the log file.
func (a *App) Close() error {
	var firstErr error
	if err := a.meta.Close(); err != nil {
		firstErr = fmt.Errorf("closing metadata store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
