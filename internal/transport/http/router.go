package http

import (
	"net/http"

	"github.com/go-api-errnotify/internal/config"
	"github.com/go-api-errnotify/internal/domain"
	"github.com/go-api-errnotify/internal/transport/http/handler"
	appmiddleware "github.com/go-api-errnotify/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. The returned limiter
// must be stopped on shutdown.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, *appmiddleware.RateLimiter) {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// A misbehaving front end can report failures in a tight loop.
	reportRL := appmiddleware.NewRateLimiter(rate.Limit(10), 20)

	healthH := handler.NewHealthHandler(deps.Catalog)
	failureH := handler.NewFailureHandler(deps.ErrNotifier)
	notifH := handler.NewNotificationHandler(deps.Notifications)
	catalogH := handler.NewCatalogHandler(deps.Catalog, deps.Logger)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.Verifier))

			r.With(reportRL.Limit).Post("/failures", failureH.Report)
			r.Get("/notifications", notifH.ListUnread)
			r.Put("/notifications/{id}", notifH.MarkAsRead)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))
				r.Post("/catalog/reload", catalogH.Reload)
			})
		})
	})

	return r, reportRL
}
