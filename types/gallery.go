package types

import "time"

// GalleryType distinguishes photo and video gallery entries.
type GalleryType string

const (
	GalleryPhoto GalleryType = "photo"
	GalleryVideo GalleryType = "video"
)

// Valid reports whether the gallery type is one of the defined types.
func (t GalleryType) Valid() bool {
	return t == GalleryPhoto || t == GalleryVideo
}

// GalleryItem represents a photo or video in the NGO media gallery.
type GalleryItem struct {
	ID        int         `json:"id" db:"id"`
	Type      GalleryType `json:"type" db:"type"`
	MediaKey  string      `json:"-" db:"media_key"`
	MediaURL  string      `json:"url" db:"-"`
	Caption   string      `json:"caption,omitempty" db:"caption"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
