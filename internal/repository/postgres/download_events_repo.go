package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spectropro/spectro-backend/internal/models"
	"github.com/spectropro/spectro-backend/internal/repository"
)

type downloadEventsRepo struct{ pool *pgxpool.Pool }

func NewDownloadEvents(pool *pgxpool.Pool) repository.DownloadEvents {
	return &downloadEventsRepo{pool: pool}
}

func (r *downloadEventsRepo) Create(ctx context.Context, ev models.DownloadEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO download_events(id, file_id, category, user_id, role)
		 VALUES($1,$2,$3,$4,NULLIF($5,''))`,
		ev.ID, ev.FileID, ev.Category, ev.UserID, ev.Role,
	)
	return err
}

func (r *downloadEventsRepo) ListRecent(ctx context.Context, limit int) ([]models.DownloadEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, file_id, category, user_id, COALESCE(role, ''), created_at
		 FROM download_events ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DownloadEvent
	for rows.Next() {
		var ev models.DownloadEvent
		if err := rows.Scan(&ev.ID, &ev.FileID, &ev.Category, &ev.UserID, &ev.Role, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
