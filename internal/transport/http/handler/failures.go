package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-api-errnotify/internal/application/errnotify"
	"github.com/go-api-errnotify/internal/application/notification"
	"github.com/go-api-errnotify/internal/domain"
	"github.com/go-api-errnotify/internal/pkg/validate"
)

// FailureHandler receives failed exchanges reported by front ends.
type FailureHandler struct {
	svc errnotify.Service
}

func NewFailureHandler(svc errnotify.Service) *FailureHandler { return &FailureHandler{svc: svc} }

// Report classifies the reported failure and queues its notifications for
// the calling user.
func (h *FailureHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req FailureReport
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f := domain.NewFailure(*req.StatusCode, req.Error)
	ctx := notification.WithRecipient(r.Context(), userID)
	count, err := h.svc.Dispatch(ctx, f)

	var observed *domain.Failure
	if !errors.As(err, &observed) {
		writeError(w, http.StatusInternalServerError, "failure was not observed")
		return
	}
	writeJSON(w, http.StatusAccepted, FailureAccepted{StatusCode: observed.StatusCode, Notifications: count})
}
