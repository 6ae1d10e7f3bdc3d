package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"thermostat_panel/internal/metrics"
	"thermostat_panel/internal/models"
)

// DefaultDebounce is how long a target edit waits for a follow-up edit
// before it is pushed.
const DefaultDebounce = 500 * time.Millisecond

// TargetService owns the target temperature and its single pending push.
type TargetService struct {
	deps
	debounce time.Duration

	mu      sync.Mutex
	pending *time.Timer
	gen     uint64 // identifies the latest scheduled push
}

func NewTargetService(d deps, debounce time.Duration) *TargetService {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &TargetService{deps: d, debounce: debounce}
}

// Increment raises the target by one degree.
func (s *TargetService) Increment(ctx context.Context) (int, error) {
	return s.step(ctx, +1)
}

// Decrement lowers the target by one degree.
func (s *TargetService) Decrement(ctx context.Context) (int, error) {
	return s.step(ctx, -1)
}

// step validates and stores the new target, then schedules its push.
// On rejection the returned target is the unchanged current one.
// mu is held across store and schedule so the pending push always carries
// the stored target.
func (s *TargetService) step(ctx context.Context, delta int) (int, error) {
	var next int
	s.mu.Lock()
	st, err := s.stateRepo.Update(ctx, func(st *models.PanelState) error {
		next = st.Target + delta
		if err := checkTarget(next); err != nil {
			return err
		}
		st.Target = next
		st.Notice = ""
		return nil
	})
	if err == nil {
		s.scheduleLocked(next)
	}
	s.mu.Unlock()

	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			s.reject(ctx, vErr)
		}
		return st.Target, err
	}

	s.metrics.Gauge(metrics.Target, float64(next))
	s.appendEvent(ctx, models.PanelEvent{
		Type:        models.EventTargetChange,
		Description: "Target changed",
		Metadata:    map[string]any{"target": next, "delta": delta},
	})
	return next, nil
}

// scheduleLocked replaces any pending push with one for target. Caller holds mu.
func (s *TargetService) scheduleLocked(target int) {
	if s.pending != nil {
		s.pending.Stop()
	}
	s.gen++
	gen := s.gen
	s.pending = time.AfterFunc(s.debounce, func() { s.push(gen, target) })
}

// Cancel drops the pending push, if any. It reports whether one was dropped.
func (s *TargetService) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return false
	}
	stopped := s.pending.Stop()
	s.pending = nil
	s.gen++
	return stopped
}

// Pending reports whether a push is waiting for its debounce to elapse.
func (s *TargetService) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *TargetService) push(gen uint64, target int) {
	s.mu.Lock()
	if gen != s.gen {
		// superseded between the timer firing and taking the lock
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	// the push outlives the request that scheduled it
	ctx := context.Background()

	if err := s.backend.UpdateTarget(ctx, target); err != nil {
		s.metrics.Incr(metrics.PushFailed, "field:"+FieldTarget)
		s.log.Errorw("target_push_failed", "target", target, "err", err)
		s.appendEvent(ctx, models.PanelEvent{
			Type:        models.EventError,
			Description: "Target push failed",
			Metadata:    map[string]any{"target": target, "error": err.Error()},
		})
		return
	}

	if _, err := s.stateRepo.Update(ctx, func(st *models.PanelState) error {
		st.ConfirmSeq++
		return nil
	}); err != nil {
		s.log.Warnw("confirm_update_failed", "err", err)
	}
	s.metrics.Incr(metrics.PushOK, "field:"+FieldTarget)
	s.log.Infow("target_pushed", "target", target)
	s.appendEvent(ctx, models.PanelEvent{
		Type:        models.EventTargetPushed,
		Description: "Target pushed to thermostat",
		Metadata:    map[string]any{"target": target},
	})
}
