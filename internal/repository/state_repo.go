package repository

import (
	"context"
	"sync"
	"time"

	"thermostat_panel/internal/models"
)

// StateMemory keeps the panel state in process memory.
type StateMemory struct {
	mu    sync.RWMutex
	state models.PanelState
}

func NewStateMemory(initial models.PanelState) *StateMemory {
	if initial.UpdatedAt.IsZero() {
		initial.UpdatedAt = time.Now().UTC()
	}
	return &StateMemory{state: initial}
}

// Ensure implementation of StateRepo at compile time.
var _ StateRepo = (*StateMemory)(nil)

// Load returns a copy of the current state.
func (r *StateMemory) Load(ctx context.Context) (models.PanelState, error) {
	if err := ctx.Err(); err != nil {
		return models.PanelState{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state, nil
}

// Update runs fn on a copy under the write lock. If fn fails the stored
// state is left untouched and the error is returned.
func (r *StateMemory) Update(ctx context.Context, fn func(*models.PanelState) error) (models.PanelState, error) {
	if err := ctx.Err(); err != nil {
		return models.PanelState{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.state
	if err := fn(&next); err != nil {
		return r.state, err
	}
	next.UpdatedAt = time.Now().UTC()
	r.state = next
	return next, nil
}
