package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jagruti-foundation/apiserver/types"
)

// ENewspaperRepository handles persistence for e-newspaper editions.
type ENewspaperRepository struct {
	db *sql.DB
}

func NewENewspaperRepository(db *sql.DB) *ENewspaperRepository {
	return &ENewspaperRepository{db: db}
}

func (r *ENewspaperRepository) List(ctx context.Context) ([]types.ENewspaper, error) {
	const query = `
		SELECT e.id, e.file_key, e.publish_date, e.user_id,
			COALESCE(u.name, ''), COALESCE(u.email, ''), e.created_at, e.updated_at
		FROM enewspapers e
		LEFT JOIN users u ON u.id = e.user_id
		ORDER BY e.publish_date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.ENewspaper
	for rows.Next() {
		var item types.ENewspaper
		if err := rows.Scan(
			&item.ID,
			&item.FileKey,
			&item.PublishDate,
			&item.UserID,
			&item.UploaderName,
			&item.UploaderEmail,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListPublished returns editions whose publish date is not after the
// given instant. When day is non-zero, only editions published on that
// calendar day are returned.
func (r *ENewspaperRepository) ListPublished(ctx context.Context, now time.Time, day time.Time) ([]types.ENewspaper, error) {
	query := `
		SELECT id, file_key, publish_date, user_id, created_at, updated_at
		FROM enewspapers
		WHERE publish_date <= $1
		ORDER BY publish_date DESC`
	args := []any{now}

	if !day.IsZero() {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)
		query = `
			SELECT id, file_key, publish_date, user_id, created_at, updated_at
			FROM enewspapers
			WHERE publish_date >= $1 AND publish_date < $2
			ORDER BY publish_date DESC`
		args = []any{start, end}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.ENewspaper
	for rows.Next() {
		var item types.ENewspaper
		if err := rows.Scan(
			&item.ID,
			&item.FileKey,
			&item.PublishDate,
			&item.UserID,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ENewspaperRepository) Get(ctx context.Context, id int) (types.ENewspaper, error) {
	const query = `
		SELECT e.id, e.file_key, e.publish_date, e.user_id,
			COALESCE(u.name, ''), COALESCE(u.email, ''), e.created_at, e.updated_at
		FROM enewspapers e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.id = $1`
	var item types.ENewspaper
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.FileKey,
		&item.PublishDate,
		&item.UserID,
		&item.UploaderName,
		&item.UploaderEmail,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ENewspaper{}, ErrNotFound
		}
		return types.ENewspaper{}, err
	}
	return item, nil
}

func (r *ENewspaperRepository) Create(ctx context.Context, item types.ENewspaper) (types.ENewspaper, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	const query = `
		INSERT INTO enewspapers (file_key, publish_date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.FileKey,
		item.PublishDate,
		item.UserID,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID); err != nil {
		return types.ENewspaper{}, err
	}
	return item, nil
}

func (r *ENewspaperRepository) UpdatePublishDate(ctx context.Context, id int, publishDate time.Time) (types.ENewspaper, error) {
	const query = `
		UPDATE enewspapers
		SET publish_date = $1,
			updated_at = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, publishDate, time.Now(), id)
	if err != nil {
		return types.ENewspaper{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.ENewspaper{}, err
	}
	if affected == 0 {
		return types.ENewspaper{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *ENewspaperRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM enewspapers WHERE id = $1`
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
