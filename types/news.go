package types

import "time"

// News represents a published news article backed by a PDF stored in
// object storage.
type News struct {
	// ID is the unique identifier of the article.
	ID int `json:"id" db:"id"`

	// Title is the headline of the article.
	Title string `json:"title" db:"title"`

	// Date is the publication date supplied by the reporter.
	Date time.Time `json:"date" db:"date"`

	// PDFKey is the object-storage key of the article PDF.
	PDFKey string `json:"-" db:"pdf_key"`

	// PDFURL is the public URL of the article PDF, derived from PDFKey
	// by the storage backend. Not persisted.
	PDFURL string `json:"pdf_url" db:"-"`

	// AuthorID references the account that created the article.
	AuthorID int `json:"author_id" db:"author_id"`

	// AuthorName is the display name of the author, joined on reads.
	AuthorName string `json:"author_name,omitempty" db:"-"`

	// CreatedAt is the timestamp when the article was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
