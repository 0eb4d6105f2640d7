package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jagruti-foundation/apiserver/internal/auth"
	"github.com/jagruti-foundation/apiserver/internal/services"
	"github.com/jagruti-foundation/apiserver/internal/store"
	"github.com/jagruti-foundation/apiserver/types"
)

// AuthHandler provides registration, login, invitation acceptance, and
// logout endpoints.
type AuthHandler struct {
	users *services.UserService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, users *services.UserService) {
	handler := NewAuthHandler(users)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/accept-invite/{token}", handler.AcceptInvite)
	r.Post("/logout", handler.Logout)
}

// Register creates a self-registered account with role user and status
// active. No token is returned; the caller logs in separately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "user already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "user created successfully",
		UserID:  user.ID,
	})
}

// Login verifies credentials for an active account and returns a
// session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrInactiveAccount):
			writeError(w, http.StatusForbidden, "user account is not active")
		case errors.Is(err, services.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "failed to authenticate")
		}
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:  token,
		UserID: user.ID,
		Role:   user.Role,
	})
}

// AcceptInvite activates a pending invited account and logs it in.
func (h *AuthHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	_, sessionToken, err := h.users.AcceptInvite(r.Context(), token, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotInviteToken):
			writeError(w, http.StatusBadRequest, "invalid token type")
		case errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrTokenInvalid):
			writeError(w, http.StatusUnauthorized, "invalid or expired invitation link")
		case errors.Is(err, services.ErrInvalidInvitation):
			writeError(w, http.StatusBadRequest, "invalid invitation or user already active")
		default:
			writeError(w, http.StatusInternalServerError, "failed to accept invitation")
		}
		return
	}

	writeJSON(w, http.StatusOK, AcceptInviteResponse{
		Message: "account activated successfully",
		Token:   sessionToken,
	})
}

// Logout is a stateless no-op: tokens are self-contained and remain
// valid until expiry, so logout is handled client-side by discarding
// the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "logout successful"})
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string     `json:"token"`
	UserID int        `json:"user_id"`
	Role   types.Role `json:"role"`
}

type AcceptInviteRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AcceptInviteResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
