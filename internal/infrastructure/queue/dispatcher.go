// Package queue fans notifications out to a fixed pool of workers sharded by
// recipient, so each recipient sees their notifications in submission order.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/planning-insights/editorial-system/internal/api/metrics"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Deliverer performs the channel writes for one notification.
type Deliverer interface {
	Deliver(n ports.Notification)
}

// Dispatcher implements ports.Notifier. Notify never blocks the caller for
// long: a full worker channel drops the notification, because a workflow
// transition must not wait on delivery.
type Dispatcher struct {
	workers   []chan ports.Notification
	deliverer Deliverer
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, deliverer Deliverer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.Notification, numWorkers),
		deliverer: deliverer,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify routes the notification to the worker owning its recipient shard.
func (d *Dispatcher) Notify(n ports.Notification) {
	idx := d.shardIndex(n.RecipientKey)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.log.Warn().
			Str("recipient", n.RecipientKey).
			Int("worker_id", idx).
			Msg("notification dropped, worker queue full")
	}
}

// shardIndex maps a recipient key deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipientKey string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientKey))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	gauge := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			gauge.Dec()
			d.deliverer.Deliver(n)
		}
	}
}
