package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jagruti-foundation/apiserver/types"
)

// NewsRepository handles persistence for news articles.
type NewsRepository struct {
	db *sql.DB
}

func NewNewsRepository(db *sql.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) List(ctx context.Context, offset, limit int) ([]types.News, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 10
	}

	const countQuery = `SELECT COUNT(1) FROM news`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT n.id, n.title, n.date, n.pdf_key, n.author_id, COALESCE(u.name, ''), n.created_at
		FROM news n
		LEFT JOIN users u ON u.id = n.author_id
		ORDER BY n.date DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]types.News, 0, limit)
	for rows.Next() {
		var item types.News
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Date,
			&item.PDFKey,
			&item.AuthorID,
			&item.AuthorName,
			&item.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *NewsRepository) Get(ctx context.Context, id int) (types.News, error) {
	const query = `
		SELECT n.id, n.title, n.date, n.pdf_key, n.author_id, COALESCE(u.name, ''), n.created_at
		FROM news n
		LEFT JOIN users u ON u.id = n.author_id
		WHERE n.id = $1`
	var item types.News
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Date,
		&item.PDFKey,
		&item.AuthorID,
		&item.AuthorName,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.News{}, ErrNotFound
		}
		return types.News{}, err
	}
	return item, nil
}

func (r *NewsRepository) Create(ctx context.Context, item types.News) (types.News, error) {
	item.CreatedAt = time.Now()

	const query = `
		INSERT INTO news (title, date, pdf_key, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.Title,
		item.Date,
		item.PDFKey,
		item.AuthorID,
		item.CreatedAt,
	).Scan(&item.ID); err != nil {
		return types.News{}, err
	}
	return item, nil
}

func (r *NewsRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM news WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
