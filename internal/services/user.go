package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jagruti-foundation/apiserver/internal/auth"
	"github.com/jagruti-foundation/apiserver/internal/events"
	"github.com/jagruti-foundation/apiserver/internal/store"
	"github.com/jagruti-foundation/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
}

// UserService implements the account lifecycle: self-registration,
// admin invitation, invitation acceptance, and login.
type UserService struct {
	repo    UserRepository
	tokens  *auth.TokenService
	bus     *events.Bus
	baseURL string
}

func NewUserService(repo UserRepository, tokens *auth.TokenService, bus *events.Bus, baseURL string) *UserService {
	return &UserService{
		repo:    repo,
		tokens:  tokens,
		bus:     bus,
		baseURL: baseURL,
	}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates a self-registered account: role user, status active.
// The caller must log in separately; no token is issued here.
func (s *UserService) Register(ctx context.Context, name, email, password string) (types.User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	// The unique constraint remains authoritative under concurrent
	// registration; Create maps its violation to ErrDuplicateEmail.
	return s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         types.RoleUser,
		Status:       types.StatusActive,
	})
}

// Invite creates a pending staff account and returns the activation
// link embedding a single-purpose invitation token. Email delivery is
// stubbed: the link is logged and, when eventing is configured,
// published for an external mail worker.
func (s *UserService) Invite(ctx context.Context, inviterID int, email string, role types.Role) (types.User, string, error) {
	if !role.Invitable() {
		return types.User{}, "", ErrInvalidRole
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, "", store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, "", err
	}

	user, err := s.repo.Create(ctx, types.User{
		Email:     email,
		Role:      role,
		Status:    types.StatusPending,
		InvitedBy: &inviterID,
	})
	if err != nil {
		return types.User{}, "", err
	}

	token, err := s.tokens.IssueInviteToken(user.ID)
	if err != nil {
		return types.User{}, "", err
	}
	inviteLink := fmt.Sprintf("%s/auth/accept-invite/%s", s.baseURL, token)

	// TODO: replace the log line with real email delivery once an SMTP
	// worker consumes the user.invited channel.
	log.Printf("invite link for %s: %s", email, inviteLink)

	if err := s.bus.Publish(ctx, events.ChannelUserInvited, events.UserInvited{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       string(user.Role),
		InviteLink: inviteLink,
		InvitedAt:  time.Now(),
	}); err != nil {
		log.Printf("failed to publish invite event: %v", err)
	}

	return user, inviteLink, nil
}

// AcceptInvite activates a pending account. The token must verify as an
// invitation token and the referenced account must still be pending; an
// account transitions pending to active exactly once. On success a
// session token is issued so the caller need not log in separately.
func (s *UserService) AcceptInvite(ctx context.Context, token, name, password string) (types.User, string, error) {
	userID, err := s.tokens.VerifyInviteToken(token)
	if err != nil {
		return types.User{}, "", err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, "", ErrInvalidInvitation
		}
		return types.User{}, "", err
	}
	if user.Status != types.StatusPending {
		return types.User{}, "", ErrInvalidInvitation
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, "", err
	}

	user.Name = name
	user.PasswordHash = string(hashed)
	user.Status = types.StatusActive
	user, err = s.repo.Update(ctx, user)
	if err != nil {
		return types.User{}, "", err
	}

	sessionToken, err := s.tokens.IssueSessionToken(user.ID, user.Role)
	if err != nil {
		return types.User{}, "", err
	}
	return user, sessionToken, nil
}

// Login verifies credentials for an active account and issues a session
// token. Pending accounts are rejected before any password comparison;
// they have no usable password.
func (s *UserService) Login(ctx context.Context, email, password string) (types.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return types.User{}, "", err
	}

	if user.Status != types.StatusActive {
		return types.User{}, "", ErrInactiveAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSessionToken(user.ID, user.Role)
	if err != nil {
		return types.User{}, "", err
	}
	return user, token, nil
}
