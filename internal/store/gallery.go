package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jagruti-foundation/apiserver/types"
)

// GalleryRepository handles persistence for gallery media.
type GalleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) List(ctx context.Context) ([]types.GalleryItem, error) {
	const query = `
		SELECT id, type, media_key, caption, created_at
		FROM galleries
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.GalleryItem
	for rows.Next() {
		var item types.GalleryItem
		if err := rows.Scan(
			&item.ID,
			&item.Type,
			&item.MediaKey,
			&item.Caption,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *GalleryRepository) Create(ctx context.Context, item types.GalleryItem) (types.GalleryItem, error) {
	item.CreatedAt = time.Now()

	const query = `
		INSERT INTO galleries (type, media_key, caption, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.Type,
		item.MediaKey,
		item.Caption,
		item.CreatedAt,
	).Scan(&item.ID); err != nil {
		return types.GalleryItem{}, err
	}
	return item, nil
}
