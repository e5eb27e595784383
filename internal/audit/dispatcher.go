package audit

import (
	"context"
	"log/slog"
	"sync"
)

const queueSize = 100

const (
	ActionCustomerResolved = "customer_resolved"
	ActionBookingCreated   = "booking_created"
	ActionBookingFailed    = "booking_failed"
	ActionCartCleared      = "cart_cleared"
)

type Event struct {
	SessionID string
	Action    string
	Entity    string
	EntityID  string
	Metadata  any
}

// Sink stores one event.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Recorder is what the use cases depend on.
type Recorder interface {
	Dispatch(ev Event)
}

// Dispatcher writes events in the background. A full queue drops the
// event; a request never waits on the audit trail.
type Dispatcher struct {
	sink   Sink
	logger *slog.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.logger.Warn("audit write failed", "action", ev.Action, "err", err)
		}
	}
}

// Dispatch drops the event once the dispatcher is closed.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("audit dispatcher closed, dropping event", "action", ev.Action)
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits for queued ones to be written,
// or for ctx to end. It is safe to call more than once.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Discard drops every event.
type Discard struct{}

func (Discard) Dispatch(Event) {}
