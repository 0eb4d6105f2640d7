package handlers

import (
	"net/http"
	"testing"

	"github.com/jagruti-foundation/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStoryAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	_, editorToken := env.seedUser(t, types.RoleEditor, types.StatusActive, "editor@example.org")
	_, adminToken := env.seedUser(t, types.RoleAdmin, types.StatusActive, "admin@example.org")

	body, contentType := multipartBody(t, map[string]string{
		"title":       "Clean water in Latur",
		"description": "A well for three villages.",
	}, "image", "well.jpg", []byte("jpegdata"))
	rec := env.do(t, http.MethodPost, "/ngo/stories", editorToken, body, contentType)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	body, contentType = multipartBody(t, map[string]string{
		"title":       "Clean water in Latur",
		"description": "A well for three villages.",
	}, "image", "well.jpg", []byte("jpegdata"))
	rec = env.do(t, http.MethodPost, "/ngo/stories", adminToken, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeJSON[types.Story](t, rec)
	assert.Equal(t, "Clean water in Latur", created.Title)
	assert.Contains(t, created.ImageURL, "https://cdn.test/media/stories/")

	rec = env.doJSON(t, http.MethodGet, "/ngo/stories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stories := decodeJSON[[]types.Story](t, rec)
	assert.Len(t, stories, 1)
}

func TestCreateStoryRejectsNonImage(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, types.RoleAdmin, types.StatusActive, "admin@example.org")

	body, contentType := multipartBody(t, map[string]string{
		"title":       "t",
		"description": "d",
	}, "image", "well.pdf", []byte("pdfdata"))
	rec := env.do(t, http.MethodPost, "/ngo/stories", adminToken, body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateGalleryItemTypeMustMatchMedia(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, types.RoleAdmin, types.StatusActive, "admin@example.org")

	body, contentType := multipartBody(t, map[string]string{
		"type":    "photo",
		"caption": "Annual day",
	}, "media", "day.png", []byte("pngdata"))
	rec := env.do(t, http.MethodPost, "/ngo/gallery", adminToken, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[types.GalleryItem](t, rec)
	assert.Equal(t, types.GalleryPhoto, created.Type)

	// A video file declared as a photo entry is rejected.
	body, contentType = multipartBody(t, map[string]string{
		"type": "photo",
	}, "media", "clip.mp4", []byte("mp4data"))
	rec = env.do(t, http.MethodPost, "/ngo/gallery", adminToken, body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, contentType = multipartBody(t, map[string]string{
		"type": "audio",
	}, "media", "clip.mp3", []byte("mp3data"))
	rec = env.do(t, http.MethodPost, "/ngo/gallery", adminToken, body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/ngo/gallery", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeJSON[[]types.GalleryItem](t, rec)
	assert.Len(t, items, 1)
}

func TestDonationFlow(t *testing.T) {
	env := newTestEnv(t)
	donor, donorToken := env.seedUser(t, types.RoleUser, types.StatusActive, "donor@example.org")
	_, adminToken := env.seedUser(t, types.RoleAdmin, types.StatusActive, "admin@example.org")

	rec := env.doJSON(t, http.MethodPost, "/ngo/donate", "", DonationRequest{Amount: 100})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/ngo/donate", donorToken, DonationRequest{Amount: -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/ngo/donate", donorToken, DonationRequest{Amount: 250.50})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[types.Donation](t, rec)
	assert.Equal(t, donor.ID, created.UserID)
	assert.Equal(t, 250.50, created.Amount)
	assert.Equal(t, "success", created.Status)
	assert.NotEmpty(t, created.PaymentID)

	// The listing is admin-only.
	rec = env.doJSON(t, http.MethodGet, "/ngo/donations", donorToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/ngo/donations", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeJSON[DonationListResponse](t, rec)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.PaymentID, list.Items[0].PaymentID)
}
