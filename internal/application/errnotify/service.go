// Package errnotify turns failed HTTP exchanges into user-facing notifications.
package errnotify

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-api-errnotify/internal/domain"
)

// Notifier displays a notification. Implementations must not block the caller.
type Notifier interface {
	Display(ctx context.Context, text string, severity domain.Severity)
}

// Translator resolves a localization key to display text in the current
// locale. Unknown keys resolve to some fallback text, never an error.
type Translator interface {
	Resolve(key string) string
}

type Service interface {
	// Classify returns the notifications a failure maps to, in display order.
	Classify(f *domain.Failure) []domain.Notification
	// Handle displays the notifications for f and returns f itself.
	Handle(ctx context.Context, f *domain.Failure) error
	// Dispatch is Handle that also reports how many notifications were shown.
	Dispatch(ctx context.Context, f *domain.Failure) (int, error)
}

type service struct {
	notifier   Notifier
	translator Translator
	labels     domain.FieldLabelMap
	logger     *slog.Logger
}

func NewService(notifier Notifier, translator Translator, labels domain.FieldLabelMap, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		notifier:   notifier,
		translator: translator,
		labels:     labels,
		logger:     logger,
	}
}

func (s *service) Handle(ctx context.Context, f *domain.Failure) error {
	_, err := s.Dispatch(ctx, f)
	return err
}

func (s *service) Dispatch(ctx context.Context, f *domain.Failure) (int, error) {
	if f == nil {
		return 0, nil
	}
	notes := s.Classify(f)
	s.logger.Debug("http failure observed", "status", f.StatusCode, "notifications", len(notes))
	for _, n := range notes {
		s.notifier.Display(ctx, n.Text, n.Severity)
	}
	return len(notes), f
}

func (s *service) Classify(f *domain.Failure) []domain.Notification {
	if f == nil {
		return nil
	}
	switch f.StatusCode {
	case http.StatusBadRequest:
		errs, err := ParseFieldErrors(f.Body)
		if err != nil {
			s.logger.Debug("unreadable bad request body", "err", err)
			return []domain.Notification{s.generic(domain.KeyBadRequest)}
		}
		if errs[0].Kind != domain.KindField {
			return []domain.Notification{s.generic(domain.KeyBadRequest)}
		}
		return s.listFieldErrors(errs)
	case http.StatusUnauthorized, http.StatusForbidden:
		return []domain.Notification{s.generic(domain.KeySessionOrPermission)}
	case http.StatusNotFound:
		// Not-found without a user error stays silent.
		errs, err := ParseFieldErrors(f.Body)
		if err != nil || errs[0].Kind != domain.KindUser {
			return nil
		}
		return []domain.Notification{{Text: errs[0].Message, Severity: domain.SeverityError}}
	default:
		return []domain.Notification{s.generic(domain.KeyFailedConnection)}
	}
}

func (s *service) listFieldErrors(errs []domain.FieldError) []domain.Notification {
	var out []domain.Notification
	for _, e := range errs {
		key, ok := s.labels.Lookup(e.LeadField())
		if !ok {
			continue
		}
		label := s.translator.Resolve(key)
		out = append(out, domain.Notification{
			Text:     label + " " + strings.ToLower(e.Message),
			Severity: domain.SeverityError,
		})
	}
	return out
}

func (s *service) generic(key string) domain.Notification {
	return domain.Notification{Text: s.translator.Resolve(key), Severity: domain.SeverityError}
}
