package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	queueSize   = 100
	sinkTimeout = 5 * time.Second
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
	RequestID    string
	OccurredAt   time.Time
}

// Sink receives every dispatched event on the worker goroutine.
type Sink interface {
	Handle(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	log   *slog.Logger
	sinks []Sink
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(log *slog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		sinks: sinks,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
			if err := s.Handle(ctx, ev); err != nil {
				d.log.Error("audit sink failed",
					"sink", fmt.Sprintf("%T", s),
					"action", ev.Action,
					"err", err,
				)
			}
			cancel()
		}
	}
}

// Dispatch never blocks the request: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits for the queue to drain.
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
