package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jagruti-foundation/apiserver/internal/services"
	"github.com/jagruti-foundation/apiserver/internal/store"
	"github.com/jagruti-foundation/apiserver/types"
)

// NewsHandler provides HTTP handlers for news articles.
type NewsHandler struct {
	news *services.NewsService
}

func NewNewsHandler(news *services.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// NewsRouter registers news routes on the given router. Reads are
// public; creation requires reporter or above, deletion admin.
func NewsRouter(r chi.Router, news *services.NewsService, mw *Middleware) {
	handler := NewNewsHandler(news)

	r.Get("/", handler.ListNews)
	r.With(mw.RequireAuth, mw.RequireRole(types.RoleReporter, types.RoleEditor, types.RoleAdmin)).
		Post("/", handler.CreateNews)
	r.Route("/{newsID}", func(r chi.Router) {
		r.Get("/", handler.GetNews)
		r.With(mw.RequireAuth, mw.RequireRole(types.RoleAdmin)).Delete("/", handler.DeleteNews)
	})
}

func (h *NewsHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	date, err := parseDate(r.FormValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	pdf, err := formUpload(r.MultipartForm, "pdf", maxPDFBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := services.ValidatePDF(pdf); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.news.Create(r.Context(), title, date, user.ID, pdf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create news")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.news.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list news")
		return
	}

	writeJSON(w, http.StatusOK, NewsListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *NewsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "newsID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.news.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "news not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch news")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *NewsHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "newsID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.news.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "news not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete news")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// NewsListResponse is the paginated list response payload.
type NewsListResponse struct {
	Items []types.News `json:"items"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int          `json:"total"`
}
