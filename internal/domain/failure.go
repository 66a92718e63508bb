package domain

import (
	"fmt"
	"net/http"
)

// StatusNoResponse is the status code recorded when the exchange produced no
// HTTP response at all (DNS failure, refused connection, timeout).
const StatusNoResponse = 0

// Failure describes one failed HTTP exchange. It is an error so the exact
// value observed by the notifier can be handed back to the caller.
type Failure struct {
	StatusCode int
	Body       []byte
}

// NewFailure copies body so later writes by the caller cannot alter it.
func NewFailure(statusCode int, body []byte) *Failure {
	var b []byte
	if body != nil {
		b = append([]byte(nil), body...)
	}
	return &Failure{StatusCode: statusCode, Body: b}
}

func (f *Failure) Error() string {
	if f.StatusCode == StatusNoResponse {
		return "http failure: no response"
	}
	return fmt.Sprintf("http failure: %d %s", f.StatusCode, http.StatusText(f.StatusCode))
}
