// Package metrics emits panel gauges and counters to a DogStatsD agent.
package metrics

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"

	"thermostat_panel/internal/config"
	"thermostat_panel/internal/logger"
)

// Metric names, relative to the configured namespace.
const (
	CurrentTemp  = "current_temp"
	HeatOn       = "heat_on"
	Target       = "target"
	PollInterval = "poll_interval"
	PushOK       = "push.ok"
	PushFailed   = "push.failed"
	PollFailed   = "poll.failed"
	Rejected     = "rejected"
)

// Recorder is what the services depend on.
type Recorder interface {
	Gauge(name string, value float64, tags ...string)
	Incr(name string, tags ...string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Gauge(string, float64, ...string) {}
func (Nop) Incr(string, ...string)           {}

// Statsd sends to a DogStatsD agent over UDP. Send failures are logged at
// debug level and otherwise ignored.
type Statsd struct {
	client *statsd.Client
	log    *logger.Logger
}

// New returns Nop when metrics are disabled.
func New(cfg config.Metrics, log *logger.Logger) (Recorder, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}
	c, err := statsd.New(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("create dogstatsd client for %s: %w", cfg.Addr, err)
	}
	c.Namespace = cfg.Namespace
	c.Tags = cfg.Tags

	if log != nil {
		log.Infow("metrics_enabled", "addr", cfg.Addr, "namespace", cfg.Namespace, "tags", cfg.Tags)
	}
	return &Statsd{client: c, log: log}, nil
}

func (s *Statsd) Gauge(name string, value float64, tags ...string) {
	if err := s.client.Gauge(name, value, tags, 1); err != nil && s.log != nil {
		s.log.Debugw("metric_gauge_failed", "metric", name, "err", err)
	}
}

func (s *Statsd) Incr(name string, tags ...string) {
	if err := s.client.Incr(name, tags, 1); err != nil && s.log != nil {
		s.log.Debugw("metric_incr_failed", "metric", name, "err", err)
	}
}

// Close flushes buffered metrics.
func (s *Statsd) Close() error {
	return s.client.Close()
}
