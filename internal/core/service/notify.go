package service

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
)

var _ port.Notifier = (*NotificationService)(nil)

// WithTitle sets the notification heading.
func WithTitle(title string) port.NotifyOpt {
	return func(n *domain.Notification) { n.Title = title }
}

// WithDuration overrides the auto-removal delay. A negative value
// keeps the notification until it is removed explicitly.
func WithDuration(d time.Duration) port.NotifyOpt {
	return func(n *domain.Notification) { n.Duration = d }
}

// A NotificationService keeps the ordered list of transient messages
// and expires them on schedule. Remove is idempotent, so a pending
// expiry racing a manual dismissal has no observable effect.
type NotificationService struct {
	mu     sync.Mutex
	list   []domain.Notification
	timers map[string]*time.Timer
}

func NewNotificationService() *NotificationService {
	return &NotificationService{timers: make(map[string]*time.Timer)}
}

// Add fills defaults, assigns a fresh id and schedules auto-removal
// when the duration is positive. The id is returned so the caller may
// dismiss early.
func (s *NotificationService) Add(n domain.Notification) string {
	if n.Kind == "" {
		n.Kind = domain.NotifyInfo
	}
	if n.Duration == 0 {
		n.Duration = domain.DefaultNotifyDuration
	}
	n.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = append(s.list, n)
	if n.Duration > 0 {
		id := n.ID
		s.timers[id] = time.AfterFunc(n.Duration, func() {
			s.Remove(id)
		})
	}
	return n.ID
}

func (s *NotificationService) Success(
	message string, opts ...port.NotifyOpt,
) string {
	return s.add(domain.NotifySuccess, message, 0, opts)
}

func (s *NotificationService) Error(
	message string, opts ...port.NotifyOpt,
) string {
	return s.add(domain.NotifyError, message, domain.ErrorNotifyDuration, opts)
}

func (s *NotificationService) Warning(
	message string, opts ...port.NotifyOpt,
) string {
	return s.add(domain.NotifyWarning, message, 0, opts)
}

func (s *NotificationService) Info(
	message string, opts ...port.NotifyOpt,
) string {
	return s.add(domain.NotifyInfo, message, 0, opts)
}

func (s *NotificationService) add(
	kind domain.NotificationKind,
	message string,
	duration time.Duration,
	opts []port.NotifyOpt,
) string {
	n := domain.Notification{Kind: kind, Message: message, Duration: duration}
	for _, opt := range opts {
		opt(&n)
	}
	return s.Add(n)
}

func (s *NotificationService) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	s.list = slices.DeleteFunc(s.list, func(n domain.Notification) bool {
		return n.ID == id
	})
}

func (s *NotificationService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.list = nil
}

// Notifications returns a copy in display order.
func (s *NotificationService) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.list)
}
