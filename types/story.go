package types

import "time"

// Story represents an NGO impact story with a cover image.
type Story struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ImageKey    string    `json:"-" db:"image_key"`
	ImageURL    string    `json:"image_url" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
