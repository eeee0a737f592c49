package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spectropro/spectro-backend/internal/api/httpx"
	"github.com/spectropro/spectro-backend/internal/services"
)

// AdminHandler serves the dashboard data; routes using it sit behind the
// RequireAdmin guard.
type AdminHandler struct {
	users     *services.UserService
	downloads *services.DownloadService
}

func NewAdminHandler(users *services.UserService, downloads *services.DownloadService) *AdminHandler {
	return &AdminHandler{users: users, downloads: downloads}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "listing users failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.users.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListDownloadEvents(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	events, err := h.downloads.ListEvents(r.Context(), limit)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "listing download events failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}
