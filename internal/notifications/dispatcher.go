package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
)

const (
	defaultQueueSize = 256
	deliverTimeout   = 5 * time.Second
)

// Dispatcher queues events on a buffered channel and fans them out to its sinks
// from a single background worker. When the queue is full the event is dropped.
type Dispatcher struct {
	queue chan Event
	sinks []Sink

	mu      sync.RWMutex
	closed  bool
	started bool
	done    chan struct{}
}

// NewDispatcher creates a Dispatcher. A non-positive size uses the default queue size.
func NewDispatcher(size int, sinks ...Sink) *Dispatcher {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Dispatcher{
		queue: make(chan Event, size),
		sinks: sinks,
		done:  make(chan struct{}),
	}
}

// Start launches the delivery worker. It returns immediately.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()

	go d.run(ctx)
}

// Publish enqueues the event without blocking.
func (d *Dispatcher) Publish(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}
	select {
	case d.queue <- event:
	default:
		utils.LogWarn("Notification queue full, dropping event", map[string]interface{}{
			"kind":     string(event.Kind),
			"event_id": event.ID,
		})
	}
}

// Close stops accepting events, waits for the queue to drain and closes the sinks.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	started := d.started
	close(d.queue)
	d.mu.Unlock()

	if started {
		<-d.done
	}
	for _, s := range d.sinks {
		if err := s.Close(); err != nil {
			utils.LogError(err, "Closing notification sink", map[string]interface{}{"sink": s.Name()})
		}
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)
	for event := range d.queue {
		d.deliver(ctx, event)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event Event) {
	for _, s := range d.sinks {
		deliverCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliverTimeout)
		if err := s.Deliver(deliverCtx, event); err != nil {
			utils.LogError(err, "Notification delivery failed", map[string]interface{}{
				"sink":     s.Name(),
				"kind":     string(event.Kind),
				"event_id": event.ID,
			})
		}
		cancel()
	}
}
