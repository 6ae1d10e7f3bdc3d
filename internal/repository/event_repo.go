package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"thermostat_panel/internal/models"

	"github.com/google/uuid"
)

// EventMemory is a bounded, append-only event log. Once full, the oldest
// entry is dropped for every new one.
type EventMemory struct {
	mu       sync.RWMutex
	capacity int
	events   []models.PanelEvent
}

func NewEventMemory(capacity int) *EventMemory {
	if capacity <= 0 {
		capacity = 1
	}
	return &EventMemory{capacity: capacity, events: make([]models.PanelEvent, 0, capacity)}
}

var _ EventRepo = (*EventMemory)(nil)

// Append stores a new event. If EventID or OccurredAt are empty, they're set.
func (r *EventMemory) Append(ctx context.Context, e models.PanelEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}
	e.Type = strings.ToUpper(strings.TrimSpace(e.Type))

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == r.capacity {
		copy(r.events, r.events[1:])
		r.events = r.events[:len(r.events)-1]
	}
	r.events = append(r.events, e)
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or type, oldest first.
func (r *EventMemory) List(ctx context.Context, from, to time.Time, typ string) ([]models.PanelEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	typ = strings.ToUpper(strings.TrimSpace(typ))

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PanelEvent, 0, len(r.events))
	for _, ev := range r.events {
		if !from.IsZero() && ev.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && ev.OccurredAt.After(to) {
			continue
		}
		if typ != "" && ev.Type != typ {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
