package events

import (
	"context"
	"encoding/json"
	"time"
)

// Channel names for notification events.
const (
	ChannelUserInvited      = "user.invited"
	ChannelDonationRecorded = "donation.recorded"
)

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// UserInvited is published when an admin creates an invitation. A mail
// worker may consume it to deliver the activation link; the server
// itself only logs the link.
type UserInvited struct {
	UserID     int       `json:"user_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	InviteLink string    `json:"invite_link"`
	InvitedAt  time.Time `json:"invited_at"`
}

// DonationRecorded is published when a donation is recorded.
type DonationRecorded struct {
	DonationID int       `json:"donation_id"`
	UserID     int       `json:"user_id"`
	Amount     float64   `json:"amount"`
	PaymentID  string    `json:"payment_id"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Bus wraps a backend with a stable API. A nil Bus discards events, so
// callers never need to branch on whether eventing is configured.
type Bus struct {
	backend Backend
}

// New constructs a Bus for the provided backend.
func New(backend Backend) *Bus {
	return &Bus{backend: backend}
}

// Publish sends a JSON-encoded event to the named channel. A nil bus is
// a no-op.
func (b *Bus) Publish(ctx context.Context, channel string, event any) error {
	if b == nil || b.backend == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = b.backend.Publish(ctx, channel, data, map[string]string{
		"content-type": "application/json",
	})
	return err
}

// Subscribe consumes messages from the named channel.
func (b *Bus) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if b == nil || b.backend == nil {
		return nil
	}
	return b.backend.Subscribe(ctx, channel, handler)
}

// Close closes the underlying backend.
func (b *Bus) Close() error {
	if b == nil || b.backend == nil {
		return nil
	}
	return b.backend.Close()
}
