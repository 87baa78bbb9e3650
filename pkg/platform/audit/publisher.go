package audit

import (
	"context"
	"time"

	id "relet/pkg/domain"
)

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	return p.store.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, leaseID id.LeaseID) ([]Event, error) {
	return p.store.ListByLease(ctx, int64(leaseID))
}

// Queue is the asynchronous front half of the audit pipeline: Emit enqueues
// and returns, the worker drains into a Store. When the inbox is full the
// event is dropped rather than stalling a renewal; the audit trail is an
// observability surface, not part of the decision path.
type Queue struct {
	inbox chan Event
}

func NewQueue(size int) *Queue {
	return &Queue{inbox: make(chan Event, size)}
}

func (q *Queue) Emit(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case q.inbox <- event:
	default:
	}
	return nil
}

// Events exposes the drain side for the worker.
func (q *Queue) Events() <-chan Event {
	return q.inbox
}
