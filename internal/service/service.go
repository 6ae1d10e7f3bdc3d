package service

import (
	"context"
	"time"

	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/metrics"
	"thermostat_panel/internal/models"
	"thermostat_panel/internal/repository"
)

// Backend is the thermostat the panel controls.
type Backend interface {
	CurrentTemp(ctx context.Context) (models.Readings, error)
	HeatStatus(ctx context.Context) (string, error)
	UpdateSampleRate(ctx context.Context, seconds int) error
	UpdateTarget(ctx context.Context, target int) error
}

// Target nudges the target temperature and pushes it after a debounce.
type Target interface {
	Increment(ctx context.Context) (int, error)
	Decrement(ctx context.Context) (int, error)
	Cancel() bool
}

// Interval accepts raw poll-interval edits and pushes them immediately.
type Interval interface {
	SetInterval(ctx context.Context, raw string) (int, error)
}

// Monitoring exposes the read-only panel state.
type Monitoring interface {
	GetState(ctx context.Context) (models.PanelState, error)
}

// EventLog exposes the panel activity log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.PanelEvent, error)
}

// Poller runs the recurring backend polls until ctx is cancelled.
type Poller interface {
	Run(ctx context.Context)
}

// Service aggregates all sub-services.
type Service struct {
	Target
	Interval
	Monitoring
	EventLog
	Poller
}

// Options carries the cadences that come from configuration.
type Options struct {
	Debounce        time.Duration
	HeatStatusEvery time.Duration
}

// Dependencies shared by the controllers.
type deps struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	backend   Backend
	metrics   metrics.Recorder
	log       *logger.Logger
}

// NewService wires the repositories and backend into concrete services.
// A nil recorder or logger disables metrics or logging.
func NewService(repos *repository.Repository, backend Backend, rec metrics.Recorder, log *logger.Logger, opts Options) *Service {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	d := deps{
		stateRepo: repos.StateRepo,
		eventRepo: repos.EventRepo,
		backend:   backend,
		metrics:   rec,
		log:       log,
	}
	return &Service{
		Target:     NewTargetService(d, opts.Debounce),
		Interval:   NewIntervalService(d),
		Monitoring: NewMonitoringService(repos.StateRepo),
		EventLog:   NewEventLogService(repos.EventRepo),
		Poller:     NewPollerService(d, opts.HeatStatusEvery),
	}
}

// appendEvent records ev; a failing event log is logged, never fatal.
func (d deps) appendEvent(ctx context.Context, ev models.PanelEvent) {
	if err := d.eventRepo.Append(ctx, ev); err != nil {
		d.log.Warnw("event_append_failed", "type", ev.Type, "err", err)
	}
}
