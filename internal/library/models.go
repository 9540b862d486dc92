package library

// Folder is a named grouping of documents (a course).
// Folders are immutable after creation; there is no update operation.
type Folder struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"createdAt"` // milliseconds since epoch
}

// Document pairs an uploaded PDF with its per-page annotation payload
// (a lecture). The PDF locator is set exactly once, after a successful
// blob upload, and the record is never mutated afterwards.
type Document struct {
	ID         string     `json:"id"`
	FolderID   string     `json:"folderId"`
	Title      string     `json:"title"`
	CreatedAt  int64      `json:"createdAt"`
	PDFLocator string     `json:"pdfLocator"`
	Annotation Annotation `json:"annotation"`
}

// DocumentSummary is the read-only projection used by list views, where
// the annotation payload and blob locator are unnecessary. It is always
// derived at read time, never persisted independently.
type DocumentSummary struct {
	ID        string `json:"id"`
	FolderID  string `json:"folderId"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"createdAt"`
}

// Summary returns the list-view projection of d.
func (d *Document) Summary() DocumentSummary {
	return DocumentSummary{
		ID:        d.ID,
		FolderID:  d.FolderID,
		Title:     d.Title,
		CreatedAt: d.CreatedAt,
	}
}

// BlobKey returns the storage key for a document's PDF. The
// "<folderID>/<documentID>.pdf" convention is load-bearing: it lets the
// cascade delete address every blob under a folder without resolving
// each document's locator first.
func BlobKey(folderID, documentID string) string {
	return folderID + "/" + documentID + ".pdf"
}
