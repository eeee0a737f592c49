package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/spectropro/spectro-backend/internal/api/httpx"
	"github.com/spectropro/spectro-backend/internal/middleware"
	"github.com/spectropro/spectro-backend/internal/services"
)

type UsersHandler struct {
	users *services.UserService
}

func NewUsersHandler(users *services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me returns the caller's user record with the admin flag freshly derived.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}
	u, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}
	var upd services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	u, err := h.users.UpdateProfile(r.Context(), claims.UserID, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
