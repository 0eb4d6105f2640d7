package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/jagruti-foundation/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.org",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[RegisterResponse](t, rec)
	assert.NotZero(t, created.UserID)

	rec = env.doJSON(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "asha@example.org",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	logged := decodeJSON[LoginResponse](t, rec)
	assert.Equal(t, created.UserID, logged.UserID)
	assert.Equal(t, types.RoleUser, logged.Role)
	assert.NotEmpty(t, logged.Token)
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, types.RoleUser, types.StatusActive, "asha@example.org")

	rec := env.doJSON(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.org",
		Password: "s3cret",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/auth/register", "", RegisterRequest{Email: "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginStatusMapping(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, types.RoleUser, types.StatusActive, "active@example.org")
	env.seedUser(t, types.RoleReporter, types.StatusPending, "pending@example.org")

	rec := env.doJSON(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: "nobody@example.org", Password: "password"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: "pending@example.org", Password: "password"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: "active@example.org", Password: "wrong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: "active@example.org", Password: "password"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInviteFlowEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, types.RoleAdmin, types.StatusActive, "admin@example.org")

	rec := env.doJSON(t, http.MethodPost, "/admin/invite", adminToken, InviteRequest{
		Email: "reporter@example.org",
		Role:  types.RoleReporter,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	invite := decodeJSON[InviteResponse](t, rec)
	require.True(t, strings.HasPrefix(invite.InviteLink, testBaseURL+"/auth/accept-invite/"))

	// An invited account cannot log in before acceptance.
	rec = env.doJSON(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: "reporter@example.org", Password: "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	token := strings.TrimPrefix(invite.InviteLink, testBaseURL+"/auth/accept-invite/")
	rec = env.doJSON(t, http.MethodPost, "/auth/accept-invite/"+token, "", AcceptInviteRequest{
		Name:     "Ravi",
		Password: "newpass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	accepted := decodeJSON[AcceptInviteResponse](t, rec)
	assert.NotEmpty(t, accepted.Token)

	// The invitation is single-use.
	rec = env.doJSON(t, http.MethodPost, "/auth/accept-invite/"+token, "", AcceptInviteRequest{
		Name:     "Ravi",
		Password: "newpass",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: "reporter@example.org", Password: "newpass"})
	require.Equal(t, http.StatusOK, rec.Code)
	logged := decodeJSON[LoginResponse](t, rec)
	assert.Equal(t, types.RoleReporter, logged.Role)
}

func TestAcceptInviteRejectsSessionToken(t *testing.T) {
	env := newTestEnv(t)
	_, sessionToken := env.seedUser(t, types.RoleUser, types.StatusActive, "user@example.org")

	rec := env.doJSON(t, http.MethodPost, "/auth/accept-invite/"+sessionToken, "", AcceptInviteRequest{
		Name:     "X",
		Password: "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcceptInviteGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/auth/accept-invite/not-a-jwt", "", AcceptInviteRequest{
		Name:     "X",
		Password: "x",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInviteRoleValidation(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, types.RoleAdmin, types.StatusActive, "admin@example.org")

	for _, role := range []types.Role{types.RoleAdmin, types.RoleUser, types.Role("superuser")} {
		rec := env.doJSON(t, http.MethodPost, "/admin/invite", adminToken, InviteRequest{
			Email: "x@example.org",
			Role:  role,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "role %q", role)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
