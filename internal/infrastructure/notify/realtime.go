package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/planning-insights/editorial-system/internal/api/metrics"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

const publishTimeout = 5 * time.Second

// RealtimePublisher pushes workflow events onto per-user Redis pub/sub
// channels. Frontend gateways subscribe to user:<id> and forward to open
// connections; a channel with no subscribers drops the event, which is the
// intended fire-and-forget semantic.
type RealtimePublisher struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRealtimePublisher(client *redis.Client, log zerolog.Logger) *RealtimePublisher {
	return &RealtimePublisher{client: client, log: log}
}

// envelope is the wire format published to the channel.
type envelope struct {
	ID      string         `json:"id"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
	At      time.Time      `json:"at"`
}

// Publish serialises the event and publishes it to its channel.
func (p *RealtimePublisher) Publish(ev ports.RealtimeEvent) error {
	body, err := json.Marshal(envelope{
		ID:      uuid.NewString(),
		Event:   ev.Name,
		Payload: ev.Payload,
		At:      time.Now().UTC(),
	})
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("realtime", "error").Inc()
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.client.Publish(ctx, ev.Channel, body).Err(); err != nil {
		metrics.NotificationsTotal.WithLabelValues("realtime", "error").Inc()
		p.log.Error().Err(err).Str("channel", ev.Channel).Str("event", ev.Name).Msg("realtime publish failed")
		return err
	}

	metrics.NotificationsTotal.WithLabelValues("realtime", "ok").Inc()
	return nil
}
