package audit

import (
	"context"
	"sync"

	"github.com/salonhub/salon-api/internal/logging"
	"github.com/salonhub/salon-api/internal/metrics"
)

type Event struct {
	Action   string
	Entity   string
	EntityID *int64
	Metadata any
}

// Sink persists one audit event.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

const queueSize = 100

// Dispatcher hands events to a background worker so writes never wait on
// the audit table. Events are dropped when the queue is full.
type Dispatcher struct {
	sink  Sink
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			logging.Error().Err(err).Str("action", ev.Action).Msg("audit error")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia, nunca quebrar a API
		metrics.RecordAuditDropped()
		logging.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
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
