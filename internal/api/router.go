package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/spectropro/spectro-backend/internal/adminlist"
	"github.com/spectropro/spectro-backend/internal/api/handlers"
	"github.com/spectropro/spectro-backend/internal/auth"
	"github.com/spectropro/spectro-backend/internal/config"
	"github.com/spectropro/spectro-backend/internal/metrics"
	"github.com/spectropro/spectro-backend/internal/middleware"
	"github.com/spectropro/spectro-backend/internal/services"
)

type Deps struct {
	Cfg       config.Config
	TM        *auth.TokenManager
	Approved  *adminlist.List
	Users     *services.UserService
	Downloads *services.DownloadService
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authMW := middleware.NewAuthMiddleware(d.TM)
	authH := handlers.NewAuthHandler(d.Users)
	usersH := handlers.NewUsersHandler(d.Users)
	downloadsH := handlers.NewDownloadsHandler(d.Downloads)
	adminH := handlers.NewAdminHandler(d.Users, d.Downloads)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		// Public files are served without a session; a valid token upgrades
		// the caller's role for protected ones.
		r.Group(func(r chi.Router) {
			r.Use(authMW.Optional)
			r.Get("/downloads", downloadsH.List)
			r.Get("/downloads/{fileId}", downloadsH.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMW.Require)
			r.Get("/me", usersH.Me)
			r.Patch("/me", usersH.UpdateMe)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMW.Require, middleware.RequireAdmin(d.Approved))
			r.Get("/admin/users", adminH.ListUsers)
			r.Delete("/admin/users/{id}", adminH.DeleteUser)
			r.Get("/admin/downloads/events", adminH.ListDownloadEvents)
		})
	})

	return r
}
