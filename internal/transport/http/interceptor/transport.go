// Package interceptor observes failed exchanges made through an http.Client
// and reports them to an error handler without altering what the caller sees.
package interceptor

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/go-api-errnotify/internal/domain"
)

// MaxBodyBytes bounds how much of a failed response body is buffered for
// classification. Bodies are restored in full regardless.
const MaxBodyBytes = 1 << 20

// FailureHandler observes a failure. The returned error is ignored by
// Transport; it exists so the same handler can be used in error-returning
// call paths.
type FailureHandler interface {
	Handle(ctx context.Context, f *domain.Failure) error
}

// Transport is an http.RoundTripper that reports failed exchanges to Handler.
// Responses and errors from Base are returned unchanged. A nil Handler turns
// Transport into a pass-through.
type Transport struct {
	Base    http.RoundTripper
	Handler FailureHandler
}

// Wrap returns a shallow copy of client whose transport reports failures to h.
func Wrap(client *http.Client, h FailureHandler) *http.Client {
	if client == nil {
		client = &http.Client{}
	}
	c := *client
	c.Transport = &Transport{Base: client.Transport, Handler: h}
	return &c
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Handler == nil {
		return t.base().RoundTrip(req)
	}
	resp, err := t.base().RoundTrip(req)
	if err != nil {
		if req.Context().Err() == nil {
			_ = t.Handler.Handle(req.Context(), domain.NewFailure(domain.StatusNoResponse, nil))
		}
		return resp, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}
	body, rerr := peekBody(resp)
	if rerr != nil {
		body = nil
	}
	_ = t.Handler.Handle(req.Context(), domain.NewFailure(resp.StatusCode, body))
	return resp, nil
}

// peekBody reads up to MaxBodyBytes of resp.Body and puts everything back so
// the caller can read the body from the start.
func peekBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, nil
	}
	head, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	resp.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), resp.Body), resp.Body}
	if err != nil {
		return nil, err
	}
	return head, nil
}

// CheckResponse returns nil for 2xx/3xx responses and a *domain.Failure
// carrying the status and buffered body otherwise. The body is restored.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}
	body, _ := peekBody(resp)
	return domain.NewFailure(resp.StatusCode, body)
}
