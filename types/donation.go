package types

import "time"

// Donation represents a mocked donation record. Payment gateway
// integration is out of scope; PaymentID carries a generated mock id
// and Status is always "success".
type Donation struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Amount    float64   `json:"amount" db:"amount"`
	PaymentID string    `json:"payment_id" db:"payment_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// DonorName and DonorEmail are joined from the users table on
	// admin listings. Not persisted on this record.
	DonorName  string `json:"donor_name,omitempty" db:"-"`
	DonorEmail string `json:"donor_email,omitempty" db:"-"`
}
