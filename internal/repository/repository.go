package repository

import (
	"context"
	"time"

	"thermostat_panel/internal/models"
)

// StateRepo holds the panel state. Update applies fn atomically and
// returns the state it produced.
type StateRepo interface {
	Load(ctx context.Context) (models.PanelState, error)
	Update(ctx context.Context, fn func(*models.PanelState) error) (models.PanelState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.PanelEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.PanelEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
}

// NewRepository builds the in-memory stores seeded with the initial state.
func NewRepository(initial models.PanelState, eventCapacity int) *Repository {
	return &Repository{
		StateRepo: NewStateMemory(initial),
		EventRepo: NewEventMemory(eventCapacity),
	}
}
