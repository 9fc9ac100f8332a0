package notify

import (
	"github.com/rs/zerolog"

	"github.com/planning-insights/editorial-system/internal/core/ports"
)

// Deliverer performs the actual channel writes for one notification. The
// dispatcher hands it work already sharded by recipient.
type Deliverer struct {
	email    *EmailSender
	realtime *RealtimePublisher
	log      zerolog.Logger
}

func NewDeliverer(email *EmailSender, realtime *RealtimePublisher, log zerolog.Logger) *Deliverer {
	return &Deliverer{email: email, realtime: realtime, log: log}
}

// Deliver writes each requested channel independently. A failed email never
// blocks the realtime event and vice versa; errors are already counted and
// logged by the channel implementations.
func (d *Deliverer) Deliver(n ports.Notification) {
	if n.Event != nil && d.realtime != nil {
		_ = d.realtime.Publish(*n.Event)
	}
	if n.Email != nil && d.email != nil {
		_ = d.email.Send(*n.Email)
	}
}
