// Package event delivers account lifecycle events to in-process listeners.
package event

import (
	"context"
	"sync"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/logger"

	"go.uber.org/zap"
)

// Listener handles one event. A returned error is logged and never reaches
// the publisher.
type Listener func(ctx context.Context, event domain.Event) error

// Dispatcher runs listeners synchronously in subscription order.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[domain.EventName][]Listener
	log       *zap.Logger
}

var _ domain.EventPublisher = (*Dispatcher)(nil)

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[domain.EventName][]Listener),
		log:       logger.Log,
	}
}

func (d *Dispatcher) Subscribe(name domain.EventName, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[name] = append(d.listeners[name], l)
}

func (d *Dispatcher) Publish(ctx context.Context, ev domain.Event) {
	d.mu.RLock()
	ls := append([]Listener(nil), d.listeners[ev.Name]...)
	d.mu.RUnlock()

	for _, l := range ls {
		if err := l(ctx, ev); err != nil {
			fields := []zap.Field{zap.String("event", string(ev.Name)), zap.Error(err)}
			if ev.User != nil {
				fields = append(fields, zap.Int64("user_id", ev.User.ID))
			}
			d.log.Error("Event listener failed", fields...)
		}
	}
}
