package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jagruti-foundation/apiserver/internal/services"
	"github.com/jagruti-foundation/apiserver/internal/store"
	"github.com/jagruti-foundation/apiserver/types"
)

// ENewspaperHandler provides HTTP handlers for e-newspaper editions.
type ENewspaperHandler struct {
	enewspapers *services.ENewspaperService
}

func NewENewspaperHandler(enewspapers *services.ENewspaperService) *ENewspaperHandler {
	return &ENewspaperHandler{enewspapers: enewspapers}
}

// ENewspaperRouter registers e-newspaper routes on the given router.
// The published listing is public; everything else requires editor or
// above.
func ENewspaperRouter(r chi.Router, enewspapers *services.ENewspaperService, mw *Middleware) {
	handler := NewENewspaperHandler(enewspapers)

	editorOrAbove := mw.RequireRole(types.RoleEditor, types.RoleAdmin)

	r.Get("/public", handler.ListPublished)
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth, editorOrAbove)
		r.Post("/", handler.Upload)
		r.Get("/", handler.List)
		r.Route("/{enewspaperID}", func(r chi.Router) {
			r.Get("/", handler.Get)
			r.Put("/", handler.Update)
			r.Delete("/", handler.Delete)
		})
	})
}

// ListPublished returns editions already past their publish date,
// optionally restricted to a single day via ?date=YYYY-MM-DD.
func (h *ENewspaperHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	var day time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		day = parsed
	}

	items, err := h.enewspapers.ListPublished(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list e-newspapers")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ENewspaperHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	publishDate, err := parseDate(r.FormValue("publish_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid publish date")
		return
	}

	file, err := formUpload(r.MultipartForm, "file", maxPDFBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := services.ValidatePDF(file); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.enewspapers.Upload(r.Context(), publishDate, user.ID, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to upload e-newspaper")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ENewspaperHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.enewspapers.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list e-newspapers")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ENewspaperHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "enewspaperID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.enewspapers.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "e-newspaper not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch e-newspaper")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ENewspaperHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "enewspaperID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ENewspaperUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	publishDate, err := parseDate(req.PublishDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid publish date")
		return
	}

	updated, err := h.enewspapers.UpdatePublishDate(r.Context(), id, publishDate)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "e-newspaper not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update e-newspaper")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *ENewspaperHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "enewspaperID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.enewspapers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "e-newspaper not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete e-newspaper")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type ENewspaperUpdateRequest struct {
	PublishDate string `json:"publish_date"`
}
