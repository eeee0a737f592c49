package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spectropro/spectro-backend/internal/api/httpx"
	"github.com/spectropro/spectro-backend/internal/api/validate"
	"github.com/spectropro/spectro-backend/internal/models"
	"github.com/spectropro/spectro-backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerReq struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required,role"`
	StudentID string `json:"student_id" validate:"omitempty,studentid"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidation(w, err)
		return
	}

	res, err := h.users.Register(r.Context(), services.RegisterParams{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      models.Role(req.Role),
		StudentID: req.StudentID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidation(w, err)
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}

	res, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func writeValidation(w http.ResponseWriter, err error) {
	var errs validate.Errs
	if errors.As(err, &errs) {
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "validation failed", errs)
		return
	}
	httpx.WriteError(w, http.StatusBadRequest, "validation_failed", err.Error(), nil)
}

// writeServiceError maps service errors onto the API's error taxonomy:
// credential failures stay a generic 401, conflicts become 409, anything
// unrecognized is treated as caller input trouble.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
	case errors.Is(err, services.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "conflict", "user already exists", nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	default:
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
	}
}
