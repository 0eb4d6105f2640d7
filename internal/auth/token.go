package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jagruti-foundation/apiserver/types"
)

const (
	defaultSessionTTL = time.Hour
	defaultInviteTTL  = 7 * 24 * time.Hour

	purposeInvite = "invite"
)

var (
	// ErrTokenInvalid covers malformed tokens and signature mismatches.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when a well-formed token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrNotSessionToken is returned when an invitation token is presented
	// where a session token is required.
	ErrNotSessionToken = errors.New("not a session token")
	// ErrNotInviteToken is returned when a session token is presented
	// where an invitation token is required.
	ErrNotInviteToken = errors.New("not an invitation token")
)

// Claims carries the signed assertions of either a session token
// (Role set) or an invitation token (Purpose set to "invite").
type Claims struct {
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. Verification is
// stateless; no revocation list is consulted.
type TokenService struct {
	secret     []byte
	sessionTTL time.Duration
	inviteTTL  time.Duration
}

// NewTokenService constructs a TokenService around the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		sessionTTL: defaultSessionTTL,
		inviteTTL:  defaultInviteTTL,
	}
}

// IssueSessionToken encodes the account id and role, valid for one hour.
func (s *TokenService) IssueSessionToken(userID int, role types.Role) (string, error) {
	return s.issue(Claims{Role: string(role)}, userID, s.sessionTTL)
}

// IssueInviteToken encodes a single-purpose activation assertion for the
// given pending account, valid for seven days.
func (s *TokenService) IssueInviteToken(userID int) (string, error) {
	return s.issue(Claims{Purpose: purposeInvite}, userID, s.inviteTTL)
}

// VerifySessionToken validates the signature and expiry of a session
// token and returns the embedded account id and role. Invitation tokens
// are rejected with ErrNotSessionToken.
func (s *TokenService) VerifySessionToken(tokenString string) (int, types.Role, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, "", err
	}
	if claims.Purpose != "" {
		return 0, "", ErrNotSessionToken
	}
	userID, err := subjectID(claims)
	if err != nil {
		return 0, "", err
	}
	role := types.Role(claims.Role)
	if !role.Valid() {
		return 0, "", ErrTokenInvalid
	}
	return userID, role, nil
}

// VerifyInviteToken validates the signature and expiry of an invitation
// token and returns the embedded account id. Session tokens are rejected
// with ErrNotInviteToken.
func (s *TokenService) VerifyInviteToken(tokenString string) (int, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, err
	}
	if claims.Purpose != purposeInvite {
		return 0, ErrNotInviteToken
	}
	return subjectID(claims)
}

func (s *TokenService) issue(claims Claims, userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) parse(tokenString string) (Claims, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

func subjectID(claims Claims) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(claims.Subject))
	if err != nil || id < 1 {
		return 0, ErrTokenInvalid
	}
	return id, nil
}
