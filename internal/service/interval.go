package service

import (
	"context"
	"errors"
	"fmt"

	"thermostat_panel/internal/metrics"
	"thermostat_panel/internal/models"
)

type IntervalService struct {
	deps
}

func NewIntervalService(d deps) *IntervalService {
	return &IntervalService{deps: d}
}

// SetInterval validates raw, stores it and pushes it as the backend sample
// rate right away. A failed push is returned but the value stays accepted;
// the poller already uses it from its next cycle.
func (s *IntervalService) SetInterval(ctx context.Context, raw string) (int, error) {
	seconds, err := parseInterval(raw)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			s.reject(ctx, vErr)
		}
		return 0, err
	}

	if _, err := s.stateRepo.Update(ctx, func(st *models.PanelState) error {
		st.PollInterval = seconds
		st.Notice = ""
		return nil
	}); err != nil {
		return 0, fmt.Errorf("store poll interval: %w", err)
	}
	s.metrics.Gauge(metrics.PollInterval, float64(seconds))

	if err := s.backend.UpdateSampleRate(ctx, seconds); err != nil {
		s.metrics.Incr(metrics.PushFailed, "field:"+FieldPollInterval)
		s.log.Errorw("sample_rate_push_failed", "seconds", seconds, "err", err)
		s.appendEvent(ctx, models.PanelEvent{
			Type:        models.EventError,
			Description: "Sample rate push failed",
			Metadata:    map[string]any{"seconds": seconds, "error": err.Error()},
		})
		return seconds, fmt.Errorf("push sample rate: %w", err)
	}

	s.metrics.Incr(metrics.PushOK, "field:"+FieldPollInterval)
	s.log.Infow("sample_rate_pushed", "seconds", seconds)
	s.appendEvent(ctx, models.PanelEvent{
		Type:        models.EventIntervalPushed,
		Description: "Sample rate pushed to thermostat",
		Metadata:    map[string]any{"seconds": seconds},
	})
	return seconds, nil
}
