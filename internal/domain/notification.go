package domain

import "time"

// Severity is the visual/urgency treatment of a notification.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Localization keys of the generic failure notifications.
const (
	KeyBadRequest          = "API_HTTP_ERROR_SERVER_BAD_REQUEST"
	KeySessionOrPermission = "API_HTTP_ERROR_SESSION_OR_PERMISSION"
	KeyFailedConnection    = "API_HTTP_ERROR_SERVER_FAILED_CONNECTION"
)

// Notification is a rendered, user-facing message. Persisted copies form the
// recipient's inbox.
type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Text           string    `json:"text" dynamodbav:"text"`
	Severity       Severity  `json:"severity" dynamodbav:"severity"`
	Readed         int       `json:"readed" dynamodbav:"readed"` // legacy field name preserved
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}
