package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventAccountCreated       EventType = "account_created"
	EventReservationCreated   EventType = "reservation_created"
	EventRepairLogged         EventType = "repair_logged"
	EventMaintenanceRequested EventType = "maintenance_requested"
)

// Event is published after every committed mutation. Subject is the key of
// the affected record: a username, reservation ID or plane ID.
type Event struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Subject    string            `json:"subject"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func NewEvent(t EventType, subject string, attrs map[string]string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Subject:    subject,
		Attributes: attrs,
		OccurredAt: time.Now().UTC(),
	}
}
