package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/spectropro/spectro-backend/internal/repository"
)

type Repositories struct {
	Users          repo.Users
	DownloadEvents repo.DownloadEvents
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:          &usersRepo{pool},
		DownloadEvents: &downloadEventsRepo{pool},
	}
}
