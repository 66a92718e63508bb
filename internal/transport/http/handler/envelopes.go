package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-api-errnotify/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// FailureReport is the body of POST /v1/failures. StatusCode is 0 (no
// response) or an error status; Error carries the raw error payload the
// failing backend returned, if any.
type FailureReport struct {
	StatusCode *int            `json:"status_code" validate:"required,eq=0|min=400,max=599"`
	Error      json.RawMessage `json:"error"`
}

// FailureAccepted is returned once a failure has been classified.
type FailureAccepted struct {
	StatusCode    int `json:"status_code"`
	Notifications int `json:"notifications"`
}

// NotificationsEnvelope wraps inbox listings.
type NotificationsEnvelope struct {
	Data  []domain.Notification `json:"data"`
	Count int                   `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, ErrorCode: status})
}
