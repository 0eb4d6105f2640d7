package types

import "time"

// Role is the closed set of authorization levels in the system.
// Gates always check explicit membership, never ordinal comparison.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleReporter Role = "reporter"
	RoleUser     Role = "user"
)

// Valid reports whether the role is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleReporter, RoleUser:
		return true
	default:
		return false
	}
}

// Invitable reports whether an admin may create an invitation for this role.
func (r Role) Invitable() bool {
	return r == RoleEditor || r == RoleReporter
}

// Status is the account lifecycle status. An account moves from pending
// to active exactly once, on invitation acceptance, and never reverts.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display or full name. Empty until an invited
	// account is activated.
	Name string `json:"name" db:"name"`

	// Email is the user's unique email address. Matching is exact and
	// case-sensitive on the stored value.
	Email string `json:"email" db:"email"`

	// Role indicates the user's authorization level.
	Role Role `json:"role" db:"role"`

	// Status is the lifecycle status of the account. Pending accounts
	// have no password and cannot authenticate.
	Status Status `json:"status" db:"status"`

	// InvitedBy references the admin account that created this record
	// via invitation. Nil for self-registered accounts.
	InvitedBy *int `json:"invited_by,omitempty" db:"invited_by"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Empty while the account is pending. Never exposed in responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
