package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jagruti-foundation/apiserver/internal/services"
	"github.com/jagruti-foundation/apiserver/internal/store"
	"github.com/jagruti-foundation/apiserver/types"
)

// AdminHandler provides administrator-only operations.
type AdminHandler struct {
	users *services.UserService
}

func NewAdminHandler(users *services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// AdminRouter registers admin routes on the given router.
func AdminRouter(r chi.Router, users *services.UserService, mw *Middleware) {
	handler := NewAdminHandler(users)

	r.With(mw.RequireAuth, mw.RequireRole(types.RoleAdmin)).Post("/invite", handler.Invite)
}

// Invite creates a pending editor or reporter account and returns the
// activation link.
func (h *AdminHandler) Invite(w http.ResponseWriter, r *http.Request) {
	inviter, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	_, inviteLink, err := h.users.Invite(r.Context(), inviter.ID, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "invalid role. can only invite 'editor' or 'reporter'")
		case errors.Is(err, store.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "a user with this email already exists")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create invitation")
		}
		return
	}

	writeJSON(w, http.StatusCreated, InviteResponse{
		Message:    "invite sent successfully to " + req.Email,
		InviteLink: inviteLink,
	})
}

type InviteRequest struct {
	Email string     `json:"email"`
	Role  types.Role `json:"role"`
}

type InviteResponse struct {
	Message    string `json:"message"`
	InviteLink string `json:"invite_link"`
}
