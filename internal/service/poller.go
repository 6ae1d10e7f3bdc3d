package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"thermostat_panel/internal/metrics"
	"thermostat_panel/internal/models"
)

// DefaultHeatStatusEvery is the fixed heat-status cadence.
const DefaultHeatStatusEvery = 5 * time.Second

// PollerService keeps the readings and heat status in state fresh.
type PollerService struct {
	deps
	heatEvery time.Duration
	unit      time.Duration // length of one poll-interval step
}

func NewPollerService(d deps, heatEvery time.Duration) *PollerService {
	if heatEvery <= 0 {
		heatEvery = DefaultHeatStatusEvery
	}
	return &PollerService{deps: d, heatEvery: heatEvery, unit: time.Second}
}

// Run polls until ctx is cancelled. Each loop waits a full delay before its
// first poll and re-arms only once the previous poll has finished.
func (s *PollerService) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.loop(ctx, s.temperatureDelay, s.PollTemperature)
	}()
	go func() {
		defer wg.Done()
		s.loop(ctx, func(context.Context) time.Duration { return s.heatEvery }, s.PollHeatStatus)
	}()
	wg.Wait()
}

func (s *PollerService) loop(ctx context.Context, delay func(context.Context) time.Duration, poll func(context.Context) error) {
	timer := time.NewTimer(delay(ctx))
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			_ = poll(ctx)
			timer.Reset(delay(ctx))
		}
	}
}

// temperatureDelay reads the poll interval from state every cycle so an
// accepted edit applies from the next poll on.
func (s *PollerService) temperatureDelay(ctx context.Context) time.Duration {
	seconds := models.MinPollInterval
	if st, err := s.stateRepo.Load(ctx); err == nil && st.PollInterval >= models.MinPollInterval {
		seconds = st.PollInterval
	}
	return time.Duration(seconds) * s.unit
}

// PollTemperature fetches /cur_temp and stores the three readings. On any
// failure the previous readings stay in place.
func (s *PollerService) PollTemperature(ctx context.Context) error {
	r, err := s.backend.CurrentTemp(ctx)
	if err != nil {
		s.pollFailed(ctx, "cur_temp", err)
		return err
	}

	var changed bool
	if _, err := s.stateRepo.Update(ctx, func(st *models.PanelState) error {
		changed = st.CurrentTemp != r.Temperature || st.Humidity != r.Humidity || st.FurnaceSummary != r.FurnaceSummary
		st.CurrentTemp = r.Temperature
		st.Humidity = r.Humidity
		st.FurnaceSummary = r.FurnaceSummary
		return nil
	}); err != nil {
		return err
	}

	if v, err := strconv.ParseFloat(r.Temperature, 64); err == nil {
		s.metrics.Gauge(metrics.CurrentTemp, v)
	}
	s.log.Debugw("reading_polled", "temp", r.Temperature, "humidity", r.Humidity, "summary", r.FurnaceSummary)
	if changed {
		s.appendEvent(ctx, models.PanelEvent{
			Type:        models.EventReading,
			Description: "Reading changed",
			Metadata:    r,
		})
	}
	return nil
}

// PollHeatStatus fetches /heat_status; only "ON" turns the heat indicator on.
func (s *PollerService) PollHeatStatus(ctx context.Context) error {
	status, err := s.backend.HeatStatus(ctx)
	if err != nil {
		s.pollFailed(ctx, "heat_status", err)
		return err
	}

	heatOn := status == models.HeatOn
	var changed bool
	if _, err := s.stateRepo.Update(ctx, func(st *models.PanelState) error {
		changed = st.HeatStatus != status
		st.HeatStatus = status
		st.HeatIsOn = heatOn
		return nil
	}); err != nil {
		return err
	}

	if heatOn {
		s.metrics.Gauge(metrics.HeatOn, 1)
	} else {
		s.metrics.Gauge(metrics.HeatOn, 0)
	}
	if changed {
		s.log.Infow("heat_status_changed", "status", status)
		s.appendEvent(ctx, models.PanelEvent{
			Type:        models.EventHeatStatus,
			Description: "Furnace is currently " + status,
			Metadata:    map[string]any{"status": status, "heat_is_on": heatOn},
		})
	}
	return nil
}

func (s *PollerService) pollFailed(ctx context.Context, endpoint string, err error) {
	if ctx.Err() != nil {
		// shutting down
		return
	}
	s.metrics.Incr(metrics.PollFailed, "endpoint:"+endpoint)
	s.log.Warnw("poll_failed", "endpoint", endpoint, "err", err)
	s.appendEvent(ctx, models.PanelEvent{
		Type:        models.EventError,
		Description: "Poll of /" + endpoint + " failed",
		Metadata:    map[string]any{"endpoint": endpoint, "error": err.Error()},
	})
}
