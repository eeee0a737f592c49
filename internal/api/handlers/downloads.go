package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spectropro/spectro-backend/internal/api/httpx"
	"github.com/spectropro/spectro-backend/internal/catalog"
	"github.com/spectropro/spectro-backend/internal/middleware"
	"github.com/spectropro/spectro-backend/internal/models"
	"github.com/spectropro/spectro-backend/internal/policy"
	"github.com/spectropro/spectro-backend/internal/services"
)

type DownloadsHandler struct {
	downloads *services.DownloadService
}

func NewDownloadsHandler(downloads *services.DownloadService) *DownloadsHandler {
	return &DownloadsHandler{downloads: downloads}
}

// callerRole returns the asserted role of the request, empty when anonymous.
func callerRole(r *http.Request) (models.Role, string) {
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		return models.Role(claims.Role), claims.UserID
	}
	return "", ""
}

type listedFile struct {
	catalog.File
	Accessible bool `json:"accessible"`
}

// List returns the catalog, optionally filtered by ?category=, with a
// per-file accessibility verdict for the caller.
func (h *DownloadsHandler) List(w http.ResponseWriter, r *http.Request) {
	role, _ := callerRole(r)

	var files []catalog.File
	if c := r.URL.Query().Get("category"); c != "" {
		files = catalog.ListByCategory(catalog.Category(c))
		if files == nil {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "unknown category", nil)
			return
		}
	} else {
		files = catalog.All()
	}

	out := make([]listedFile, 0, len(files))
	for _, f := range files {
		out = append(out, listedFile{File: f, Accessible: policy.CanAccess(f, role)})
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"categories": catalog.Categories(),
		"files":      out,
	})
}

// Get releases the resource bytes when the access policy permits.
func (h *DownloadsHandler) Get(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")
	role, userID := callerRole(r)

	f, err := h.downloads.Resolve(fileID, role)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "access denied: insufficient permissions", nil)
		return
	}

	b, err := h.downloads.Open(f)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "file not accessible", nil)
		return
	}

	h.downloads.Record(f, userID, role)

	w.Header().Set("Content-Type", catalog.MimeTypeFor(f.FileType))
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
