package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jagruti-foundation/apiserver/types"
)

// DonationRepository handles persistence for donations.
type DonationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, donation types.Donation) (types.Donation, error) {
	donation.CreatedAt = time.Now()

	const query = `
		INSERT INTO donations (user_id, amount, payment_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		donation.UserID,
		donation.Amount,
		donation.PaymentID,
		donation.Status,
		donation.CreatedAt,
	).Scan(&donation.ID); err != nil {
		return types.Donation{}, err
	}
	return donation, nil
}

func (r *DonationRepository) List(ctx context.Context, offset, limit int) ([]types.Donation, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 10
	}

	const countQuery = `SELECT COUNT(1) FROM donations`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT d.id, d.user_id, d.amount, d.payment_id, d.status, d.created_at,
			COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM donations d
		LEFT JOIN users u ON u.id = d.user_id
		ORDER BY d.created_at DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]types.Donation, 0, limit)
	for rows.Next() {
		var item types.Donation
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Amount,
			&item.PaymentID,
			&item.Status,
			&item.CreatedAt,
			&item.DonorName,
			&item.DonorEmail,
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
