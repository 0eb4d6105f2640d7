package types

import "time"

// ENewspaper represents a digital newspaper edition backed by a PDF in
// object storage. Editions become publicly visible once PublishDate has
// passed.
type ENewspaper struct {
	ID          int       `json:"id" db:"id"`
	FileKey     string    `json:"-" db:"file_key"`
	FileURL     string    `json:"file_url" db:"-"`
	PublishDate time.Time `json:"publish_date" db:"publish_date"`
	UserID      int       `json:"user_id" db:"user_id"`

	// UploaderName and UploaderEmail are joined on staff reads.
	UploaderName  string `json:"uploader_name,omitempty" db:"-"`
	UploaderEmail string `json:"uploader_email,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
