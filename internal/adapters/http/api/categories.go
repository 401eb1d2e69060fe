// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CategoryDependencies defines the interface for category operations.
type CategoryDependencies interface {
	Categories(ctx context.Context) []string
	DeleteScore(ctx context.Context, category string, userID int64) error
	DeleteCategory(ctx context.Context, category string) error
}

// CategoriesHandler handles category listing and admin deletes.
type CategoriesHandler struct {
	deps CategoryDependencies
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(deps CategoryDependencies) *CategoriesHandler {
	return &CategoriesHandler{deps: deps}
}

// HandleListCategories handles GET /categories requests.
func (h *CategoriesHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Categories(r.Context()))
}

// HandleDelete handles the admin delete routes:
//
//	DELETE /categories/{category}            removes a whole category
//	DELETE /categories/{category}/scores/{user_id} removes one user's score
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/categories/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	rawCategory, rawUser, hasUser := strings.Cut(rest, "/scores/")
	category, err := url.PathUnescape(rawCategory)
	if err != nil || category == "" || strings.Contains(rawCategory, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	if hasUser {
		userID, err := strconv.ParseInt(rawUser, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if err := h.deps.DeleteScore(r.Context(), category, userID); err != nil {
			if isNotFound(err) {
				writeError(w, http.StatusNotFound, "not_found", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}

	if err := h.deps.DeleteCategory(r.Context(), category); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
