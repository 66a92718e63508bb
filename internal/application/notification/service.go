package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/go-api-errnotify/internal/domain"
	"github.com/go-api-errnotify/internal/pkg/id"
)

// Repository is the notification inbox store.
type Repository interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
}

// Publisher delivers a notification to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

type Service interface {
	// Display queues a notification for the recipient carried by ctx and
	// returns immediately.
	Display(ctx context.Context, text string, severity domain.Severity)
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error)
	// Wait blocks until every queued notification has been delivered or dropped.
	Wait()
}

// ServiceDeps groups the collaborators of the notification service.
// Publisher is optional.
type ServiceDeps struct {
	Repo      Repository
	Publisher Publisher
	Timeout   time.Duration
	Logger    *slog.Logger
	Now       func() time.Time
}

type service struct {
	repo      Repository
	publisher Publisher
	timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
	wg        sync.WaitGroup
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:      deps.Repo,
		publisher: deps.Publisher,
		timeout:   deps.Timeout,
		logger:    deps.Logger,
		now:       deps.Now,
	}
	if s.timeout <= 0 {
		s.timeout = 5 * time.Second
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type recipientKey struct{}

// WithRecipient returns a context whose notifications are addressed to userID.
func WithRecipient(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, recipientKey{}, userID)
}

// RecipientFromContext returns the user notifications are addressed to.
func RecipientFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(recipientKey{}).(string)
	return userID, ok && userID != ""
}

func (s *service) Display(ctx context.Context, text string, severity domain.Severity) {
	userID, ok := RecipientFromContext(ctx)
	if !ok {
		s.logger.Warn("dropping notification without recipient", "severity", severity)
		return
	}
	now := s.now().UTC()
	// IDs are assigned here, on the caller's goroutine, so inbox order
	// follows call order even though delivery is concurrent.
	n := &domain.Notification{
		NotificationID: id.New(),
		UserID:         userID,
		Text:           text,
		Severity:       severity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		s.deliver(dctx, n)
	}()
}

func (s *service) deliver(ctx context.Context, n *domain.Notification) {
	if err := s.repo.Put(ctx, n); err != nil {
		s.logger.Error("store notification", "id", n.NotificationID, "user_id", n.UserID, "err", err)
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		s.logger.Warn("publish notification", "id", n.NotificationID, "user_id", n.UserID, "err", err)
	}
}

func (s *service) Wait() { s.wg.Wait() }

func (s *service) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	list, err := s.repo.ListUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list unread: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].NotificationID < list[j].NotificationID })
	return list, nil
}

func (s *service) MarkAsRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error) {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("notification %s: %w", notificationID, domain.ErrForbidden)
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}
