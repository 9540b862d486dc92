package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jipsifred/Vorlesungen/internal/library"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements library.MetadataStore on SQLite. Annotation
// payloads are stored as JSON text in the document row, so a document
// round-trips structurally through a single record.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens a SQLite metadata store at path.
// path can be a file path or ":memory:" for an in-memory store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// NewSQLiteStoreFromDB wraps an existing connection. The caller is
// responsible for ensuring the connection is properly configured.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenConnection opens and configures a SQLite connection with the
// appropriate PRAGMAs. Exported for tests and tools that need a
// properly configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite ships with foreign keys off for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return db, nil
}

// Folder operations

func (s *SQLiteStore) PutFolder(ctx context.Context, folder *library.Folder) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (id, title, description, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   description = excluded.description,
		   created_at = excluded.created_at`,
		folder.ID, folder.Title, folder.Description, folder.CreatedAt)
	if err != nil {
		return fmt.Errorf("writing folder: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetFolder(ctx context.Context, id string) (*library.Folder, error) {
	var f library.Folder
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, created_at FROM folders WHERE id = ?`, id).
		Scan(&f.ID, &f.Title, &f.Description, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding folder: %w", err)
	}
	return &f, nil
}

func (s *SQLiteStore) GetAllFolders(ctx context.Context) ([]*library.Folder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, created_at FROM folders
		 ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	defer rows.Close()

	var folders []*library.Folder
	for rows.Next() {
		var f library.Folder
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		folders = append(folders, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating folders: %w", err)
	}
	return folders, nil
}

func (s *SQLiteStore) DeleteFolder(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting folder: %w", err)
	}
	return nil
}

// Document operations

func (s *SQLiteStore) PutDocument(ctx context.Context, doc *library.Document) error {
	annotation, err := json.Marshal(doc.Annotation)
	if err != nil {
		return fmt.Errorf("encoding annotation: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, folder_id, title, created_at, pdf_locator, annotation_json)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   folder_id = excluded.folder_id,
		   title = excluded.title,
		   created_at = excluded.created_at,
		   pdf_locator = excluded.pdf_locator,
		   annotation_json = excluded.annotation_json`,
		doc.ID, doc.FolderID, doc.Title, doc.CreatedAt, doc.PDFLocator, string(annotation))
	if err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*library.Document, error) {
	var (
		d          library.Document
		annotation string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, folder_id, title, created_at, pdf_locator, annotation_json
		 FROM documents WHERE id = ?`, id).
		Scan(&d.ID, &d.FolderID, &d.Title, &d.CreatedAt, &d.PDFLocator, &annotation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding document: %w", err)
	}

	if err := json.Unmarshal([]byte(annotation), &d.Annotation); err != nil {
		return nil, fmt.Errorf("decoding annotation for document %s: %w", id, err)
	}
	return &d, nil
}

func (s *SQLiteStore) GetDocumentsByFolder(ctx context.Context, folderID string) ([]library.DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, folder_id, title, created_at FROM documents
		 WHERE folder_id = ?
		 ORDER BY created_at DESC, id`, folderID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	summaries := []library.DocumentSummary{}
	for rows.Next() {
		var d library.DocumentSummary
		if err := rows.Scan(&d.ID, &d.FolderID, &d.Title, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		summaries = append(summaries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return summaries, nil
}

func (s *SQLiteStore) DeleteDocument(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// DeleteDocumentsByFolder removes every document in a folder. A single
// DELETE statement, so the batch is atomic: a half-deleted folder is
// never observable.
func (s *SQLiteStore) DeleteDocumentsByFolder(ctx context.Context, folderID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE folder_id = ?`, folderID); err != nil {
		return fmt.Errorf("deleting folder documents: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Compile-time check that SQLiteStore implements library.MetadataStore
var _ library.MetadataStore = (*SQLiteStore)(nil)
