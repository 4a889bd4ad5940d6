// Package queue delivers user-facing notifications to outbound sinks. The
// dispatcher decouples store operations from notification delivery: a store
// mutation completes the moment its notification is enqueued, and a sink
// failure never reaches the caller.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/metrics"
	"github.com/threekst/storefront-gateway/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Sink receives notifications. Implementations must be safe for concurrent
// use by multiple workers.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, n domain.Notification) error
}

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the session id, keeping per-session delivery order.
type Dispatcher struct {
	workers []chan domain.Notification
	sinks   []Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sinks []Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		sinks:   sinks,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify implements ports.Notifier. When the target worker's buffer is full
// the notification is dropped rather than blocking the caller; a lost toast
// never affects store state.
func (d *Dispatcher) Notify(n domain.Notification) {
	ch := d.workers[d.shardIndex(n.SessionID)]
	select {
	case ch <- n:
	default:
		d.log.Warn().Str("session_id", n.SessionID).Msg("notification dropped, worker queue full")
	}
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			for _, sink := range d.sinks {
				if err := sink.Deliver(ctx, n); err != nil {
					metrics.NotificationsTotal.WithLabelValues(sink.Name(), "error").Inc()
					d.log.Error().Err(err).
						Str("sink", sink.Name()).
						Str("session_id", n.SessionID).
						Int("worker_id", id).
						Msg("notification delivery failed")
					continue
				}
				metrics.NotificationsTotal.WithLabelValues(sink.Name(), "ok").Inc()
			}
		}
	}
}
