package repository

import (
	"context"
	"errors"

	"github.com/spectropro/spectro-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) error
	StampLastLogin(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type DownloadEvents interface {
	Create(ctx context.Context, ev models.DownloadEvent) error
	ListRecent(ctx context.Context, limit int) ([]models.DownloadEvent, error)
}
