package email

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Domenick1991/airops/internal/domain"
	"github.com/rs/zerolog"
)

// Sender renders one notification per event. Delivery is a structured log
// line; there is no mail relay.
type Sender struct {
	log zerolog.Logger
}

func NewSender(log zerolog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event domain.Event) error {
	s.log.Info().
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Str("subject", event.Subject).
		Msg(Subject(event))
	return nil
}

// Subject is the one-line summary of event.
func Subject(event domain.Event) string {
	switch event.Type {
	case domain.EventAccountCreated:
		return fmt.Sprintf("New %s account %s", event.Attributes["role"], event.Subject)
	case domain.EventReservationCreated:
		return fmt.Sprintf("Reservation %s is %s on flight instance %s",
			event.Subject, event.Attributes["status"], event.Attributes["flight_instance_id"])
	case domain.EventRepairLogged:
		return fmt.Sprintf("Repair %s logged on plane %s", event.Attributes["repair_code"], event.Subject)
	case domain.EventMaintenanceRequested:
		return fmt.Sprintf("Maintenance %s requested on plane %s", event.Attributes["repair_code"], event.Subject)
	}
	return fmt.Sprintf("%s %s%s", event.Type, event.Subject, attrs(event.Attributes))
}

func attrs(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m[k]
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
