package http

import (
	"log/slog"

	"github.com/go-api-errnotify/internal/application/errnotify"
	"github.com/go-api-errnotify/internal/application/notification"
	"github.com/go-api-errnotify/internal/transport/http/handler"
	"github.com/go-api-errnotify/internal/transport/http/middleware"
)

// Deps holds the services and infrastructure the router wires together.
type Deps struct {
	ErrNotifier   errnotify.Service
	Notifications notification.Service
	Catalog       handler.Reloader
	Verifier      middleware.TokenVerifier
	Logger        *slog.Logger
}
