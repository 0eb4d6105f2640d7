package services

import "errors"

var (
	// ErrInvalidRole is returned when an invitation names a role outside
	// the invitable set (editor, reporter).
	ErrInvalidRole = errors.New("invalid role")

	// ErrInactiveAccount is returned on login for an account whose
	// status is not active.
	ErrInactiveAccount = errors.New("account is not active")

	// ErrInvalidCredentials is returned when the password does not match
	// the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInvitation is returned when an invitation token is
	// well-formed but the referenced account does not exist or is no
	// longer pending. Covers double acceptance and tampering.
	ErrInvalidInvitation = errors.New("invalid invitation")
)
