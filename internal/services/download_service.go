package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spectropro/spectro-backend/internal/catalog"
	"github.com/spectropro/spectro-backend/internal/metrics"
	"github.com/spectropro/spectro-backend/internal/models"
	"github.com/spectropro/spectro-backend/internal/policy"
	repo "github.com/spectropro/spectro-backend/internal/repository"
	"github.com/spectropro/spectro-backend/internal/worker"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrForbidden    = errors.New("access denied: insufficient permissions")
)

// DownloadService gates file retrieval behind the access policy and records
// an audit event for every released file.
type DownloadService struct {
	filesDir string
	events   repo.DownloadEvents
	wp       *worker.Pool
	log      *slog.Logger
}

func NewDownloadService(filesDir string, events repo.DownloadEvents, wp *worker.Pool, log *slog.Logger) *DownloadService {
	return &DownloadService{filesDir: filesDir, events: events, wp: wp, log: log}
}

// Resolve looks up fileID and applies the access policy for role before any
// bytes are touched.
func (s *DownloadService) Resolve(fileID string, role models.Role) (catalog.File, error) {
	f, ok := catalog.GetByID(fileID)
	if !ok {
		metrics.DownloadsTotal.WithLabelValues("unknown", "not_found").Inc()
		return catalog.File{}, ErrFileNotFound
	}
	if !policy.CanAccess(f, role) {
		metrics.DownloadsTotal.WithLabelValues(string(f.Category), "denied").Inc()
		return catalog.File{}, ErrForbidden
	}
	return f, nil
}

// Open returns the resource bytes for an already-authorized file.
func (s *DownloadService) Open(f catalog.File) ([]byte, error) {
	// The catalog paths are fixed, but keep traversal out regardless.
	rel := filepath.Clean(f.Path)
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return nil, ErrFileNotFound
	}
	b, err := os.ReadFile(filepath.Join(s.filesDir, rel))
	if err != nil {
		s.log.Error("file read", "id", f.ID, "err", err)
		return nil, err
	}
	metrics.DownloadsTotal.WithLabelValues(string(f.Category), "ok").Inc()
	return b, nil
}

// Record writes the audit event off the request path.
func (s *DownloadService) Record(f catalog.File, userID string, role models.Role) {
	ev := models.DownloadEvent{
		FileID:   f.ID,
		Category: string(f.Category),
		Role:     string(role),
	}
	if userID != "" {
		ev.UserID = &userID
	}
	s.wp.Submit(func() {
		if err := s.events.Create(context.Background(), ev); err != nil {
			s.log.Error("record download", "file", f.ID, "err", err)
		}
	})
}

func (s *DownloadService) ListEvents(ctx context.Context, limit int) ([]models.DownloadEvent, error) {
	return s.events.ListRecent(ctx, limit)
}
