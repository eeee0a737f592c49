package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spectropro/spectro-backend/internal/adminlist"
	"github.com/spectropro/spectro-backend/internal/api"
	"github.com/spectropro/spectro-backend/internal/auth"
	"github.com/spectropro/spectro-backend/internal/config"
	"github.com/spectropro/spectro-backend/internal/db"
	"github.com/spectropro/spectro-backend/internal/logger"
	"github.com/spectropro/spectro-backend/internal/metrics"
	"github.com/spectropro/spectro-backend/internal/repository/postgres"
	"github.com/spectropro/spectro-backend/internal/services"
	"github.com/spectropro/spectro-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	approved := adminlist.New(cfg.ApprovedStudentIDs)
	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)

	userSvc := services.NewUserService(repos.Users, tm, approved, wp, log)
	downloadSvc := services.NewDownloadService(cfg.FilesDir, repos.DownloadEvents, wp, log)

	r := api.NewRouter(api.Deps{
		Cfg:       cfg,
		TM:        tm,
		Approved:  approved,
		Users:     userSvc,
		Downloads: downloadSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
