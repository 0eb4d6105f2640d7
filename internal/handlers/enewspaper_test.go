package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jagruti-foundation/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadEdition(t *testing.T, env *testEnv, token, publishDate string) types.ENewspaper {
	t.Helper()

	body, contentType := multipartBody(t, map[string]string{
		"publish_date": publishDate,
	}, "file", "edition.pdf", []byte("%PDF-1.7"))
	rec := env.do(t, http.MethodPost, "/enewspapers/", token, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeJSON[types.ENewspaper](t, rec)
}

func TestENewspaperStaffGate(t *testing.T) {
	env := newTestEnv(t)
	_, reporterToken := env.seedUser(t, types.RoleReporter, types.StatusActive, "reporter@example.org")

	body, contentType := multipartBody(t, map[string]string{
		"publish_date": "2026-08-01",
	}, "file", "edition.pdf", []byte("%PDF-1.7"))
	rec := env.do(t, http.MethodPost, "/enewspapers/", reporterToken, body, contentType)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/enewspapers/", reporterToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/enewspapers/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestENewspaperUploadAndList(t *testing.T) {
	env := newTestEnv(t)
	editor, token := env.seedUser(t, types.RoleEditor, types.StatusActive, "editor@example.org")

	created := uploadEdition(t, env, token, "2026-08-01")
	assert.Equal(t, editor.ID, created.UserID)
	assert.Contains(t, created.FileURL, "https://cdn.test/media/enewspapers/")

	rec := env.doJSON(t, http.MethodGet, "/enewspapers/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeJSON[[]types.ENewspaper](t, rec)
	assert.Len(t, items, 1)

	rec = env.doJSON(t, http.MethodGet, fmt.Sprintf("/enewspapers/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/enewspapers/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestENewspaperPublicListHidesFutureEditions(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, types.RoleEditor, types.StatusActive, "editor@example.org")

	past := uploadEdition(t, env, token, "2026-08-01")
	uploadEdition(t, env, token, time.Now().AddDate(0, 0, 7).Format("2006-01-02"))

	rec := env.doJSON(t, http.MethodGet, "/enewspapers/public", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeJSON[[]types.ENewspaper](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, past.ID, items[0].ID)

	// Filtering by day surfaces that day's edition regardless of recency.
	rec = env.doJSON(t, http.MethodGet, "/enewspapers/public?date=2026-08-01", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items = decodeJSON[[]types.ENewspaper](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, past.ID, items[0].ID)

	rec = env.doJSON(t, http.MethodGet, "/enewspapers/public?date=not-a-date", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestENewspaperUpdatePublishDate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, types.RoleAdmin, types.StatusActive, "admin@example.org")

	created := uploadEdition(t, env, token, "2026-08-01")

	rec := env.doJSON(t, http.MethodPut, fmt.Sprintf("/enewspapers/%d", created.ID), token, ENewspaperUpdateRequest{
		PublishDate: "2026-09-15",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeJSON[types.ENewspaper](t, rec)
	assert.Equal(t, "2026-09-15", updated.PublishDate.Format("2006-01-02"))

	rec = env.doJSON(t, http.MethodPut, "/enewspapers/999", token, ENewspaperUpdateRequest{PublishDate: "2026-09-15"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestENewspaperDelete(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, types.RoleEditor, types.StatusActive, "editor@example.org")

	created := uploadEdition(t, env, token, "2026-08-01")
	require.Len(t, env.objects.objects, 1)

	rec := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/enewspapers/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, env.objects.objects)

	rec = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/enewspapers/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
