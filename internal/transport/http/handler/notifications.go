package handler

import (
	"net/http"

	"github.com/go-api-errnotify/internal/application/notification"
	"github.com/go-api-errnotify/internal/pkg/id"
	"github.com/go-api-errnotify/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// NotificationHandler serves the caller's notification inbox.
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	unread, err := h.svc.ListUnread(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NotificationsEnvelope{Data: unread, Count: len(unread)})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	notificationID := chi.URLParam(r, "id")
	if !id.Valid(notificationID) {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	n, err := h.svc.MarkAsRead(r.Context(), notificationID, userID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// callerID returns the authenticated user, writing a 401 when there is none.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return claims.UserID, true
}
