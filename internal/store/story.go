package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jagruti-foundation/apiserver/types"
)

// StoryRepository handles persistence for NGO stories.
type StoryRepository struct {
	db *sql.DB
}

func NewStoryRepository(db *sql.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

func (r *StoryRepository) List(ctx context.Context) ([]types.Story, error) {
	const query = `
		SELECT id, title, description, image_key, created_at
		FROM stories
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.Story
	for rows.Next() {
		var item types.Story
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.ImageKey,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *StoryRepository) Create(ctx context.Context, item types.Story) (types.Story, error) {
	item.CreatedAt = time.Now()

	const query = `
		INSERT INTO stories (title, description, image_key, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.Title,
		item.Description,
		item.ImageKey,
		item.CreatedAt,
	).Scan(&item.ID); err != nil {
		return types.Story{}, err
	}
	return item, nil
}
