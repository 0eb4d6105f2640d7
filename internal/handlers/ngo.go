package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jagruti-foundation/apiserver/internal/services"
	"github.com/jagruti-foundation/apiserver/types"
)

// NGOHandler provides HTTP handlers for stories, the gallery, and
// donations.
type NGOHandler struct {
	ngo *services.NGOService
}

func NewNGOHandler(ngo *services.NGOService) *NGOHandler {
	return &NGOHandler{ngo: ngo}
}

// NGORouter registers NGO routes on the given router. Story and gallery
// reads are public; writes are admin-only. Donations require any
// authenticated account; the donation listing is admin-only.
func NGORouter(r chi.Router, ngo *services.NGOService, mw *Middleware) {
	handler := NewNGOHandler(ngo)

	adminOnly := mw.RequireRole(types.RoleAdmin)

	r.Get("/stories", handler.ListStories)
	r.With(mw.RequireAuth, adminOnly).Post("/stories", handler.CreateStory)
	r.Get("/gallery", handler.ListGallery)
	r.With(mw.RequireAuth, adminOnly).Post("/gallery", handler.CreateGalleryItem)
	r.With(mw.RequireAuth).Post("/donate", handler.CreateDonation)
	r.With(mw.RequireAuth, adminOnly).Get("/donations", handler.ListDonations)
}

func (h *NGOHandler) CreateStory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || description == "" {
		writeError(w, http.StatusBadRequest, "title and description are required")
		return
	}

	image, err := formUpload(r.MultipartForm, "image", maxImageBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := services.ValidateImage(image); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.ngo.CreateStory(r.Context(), title, description, image)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create story")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *NGOHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	items, err := h.ngo.ListStories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list stories")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *NGOHandler) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	galleryType := types.GalleryType(strings.TrimSpace(r.FormValue("type")))
	if !galleryType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid type. must be 'photo' or 'video'")
		return
	}

	limit := int64(maxImageBytes)
	if galleryType == types.GalleryVideo {
		limit = maxVideoBytes
	}

	media, err := formUpload(r.MultipartForm, "media", limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := services.ValidateGalleryMedia(media, galleryType); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.ngo.CreateGalleryItem(r.Context(), galleryType, strings.TrimSpace(r.FormValue("caption")), media)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create gallery item")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *NGOHandler) ListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.ngo.ListGallery(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list gallery")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *NGOHandler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	created, err := h.ngo.CreateDonation(r.Context(), user.ID, req.Amount)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create donation")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *NGOHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.ngo.ListDonations(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list donations")
		return
	}

	writeJSON(w, http.StatusOK, DonationListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

type DonationRequest struct {
	Amount float64 `json:"amount"`
}

// DonationListResponse is the paginated list response payload.
type DonationListResponse struct {
	Items []types.Donation `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
}
