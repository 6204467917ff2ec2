package notifications

import (
	"context"
	"errors"
	"sync"

	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/logger"
)

var ErrEventNotFound = errors.New("event not found")

type Sender interface {
	Send(ctx context.Context, event domain.Event) error
}

type NotificationUseCase interface {
	Handle(ctx context.Context, event domain.Event) error
	List(ctx context.Context, eventType domain.EventType) ([]domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
}

// NotificationService keeps the most recent events in a fixed-size ring and
// forwards each one to the sender.
type NotificationService struct {
	sender Sender

	mu     sync.RWMutex
	ring   []domain.Event
	next   int
	filled bool
}

func NewNotificationService(sender Sender, size int) *NotificationService {
	if size < 1 {
		size = 1
	}
	return &NotificationService{sender: sender, ring: make([]domain.Event, size)}
}

// Handle records the event and notifies. A send failure is logged and does
// not stop consumption.
func (s *NotificationService) Handle(ctx context.Context, event domain.Event) error {
	s.mu.Lock()
	s.ring[s.next] = event
	s.next = (s.next + 1) % len(s.ring)
	if s.next == 0 {
		s.filled = true
	}
	s.mu.Unlock()

	if s.sender == nil {
		return nil
	}
	if err := s.sender.Send(ctx, event); err != nil {
		logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to send notification")
	}
	return nil
}

// List returns the recorded events, newest first. An empty eventType
// matches every type.
func (s *NotificationService) List(ctx context.Context, eventType domain.EventType) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := s.next
	if s.filled {
		n = len(s.ring)
	}
	out := make([]domain.Event, 0, n)
	for i := 1; i <= n; i++ {
		e := s.ring[(s.next-i+len(s.ring))%len(s.ring)]
		if eventType == "" || e.Type == eventType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *NotificationService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	events, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, ErrEventNotFound
}
