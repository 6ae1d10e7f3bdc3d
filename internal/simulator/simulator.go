// Package simulator is a fake thermostat backend: a house whose temperature
// rises while the furnace runs and drifts toward ambient while it is idle.
package simulator

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"thermostat_panel/internal/logger"
)

// ----------- Simulation constants -----------
const (
	RampUpFPerSec     = 0.05  // °F per second while heating
	LossPerSec        = 0.002 // fraction of the indoor/ambient gap lost per second
	HeatSwingF        = 1.0   // °F band around target before the furnace toggles
	BaseHumidity      = 45.0  // % relative humidity while idle
	MinHumidity       = 30.0  // % floor while heating
	DryingPerSec      = 0.01  // % humidity lost per second of heating
	RecoveryPerSec    = 0.005 // % humidity regained per second idle
	DefaultSampleRate = 10    // seconds between sensor samples until told otherwise
)

// Furnace states as reported by /heat_status.
const (
	HeatOn  = "ON"
	HeatOff = "OFF"

	summaryIdle = "Idle"
)

// Options seeds a House.
type Options struct {
	AmbientF   float64
	StartTempF float64
	Target     int
}

// House is the simulated thermostat. All methods are safe for concurrent use.
type House struct {
	mu sync.Mutex

	ambientF   float64
	tempF      float64
	humidity   float64
	target     int
	sampleRate int

	heatOn        bool
	heatStartedAt time.Time

	// last sensor sample, refreshed every sampleRate seconds
	sampledTempF    float64
	sampledHumidity float64
	sampledAt       time.Time

	now func() time.Time
	log *logger.Logger
}

// NewHouse returns a house at opts.StartTempF with the furnace off.
func NewHouse(opts Options, log *logger.Logger) *House {
	if log == nil {
		log = logger.Nop()
	}
	h := &House{
		ambientF:   opts.AmbientF,
		tempF:      opts.StartTempF,
		humidity:   BaseHumidity,
		target:     opts.Target,
		sampleRate: DefaultSampleRate,
		now:        time.Now,
		log:        log,
	}
	now := h.now()
	h.sample(now)
	h.considerFurnaceStateChange(now)
	return h
}

// Run advances the model every tick until ctx is canceled.
func (h *House) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	last := h.now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			now := h.now()
			h.Step(now.Sub(last), now)
			last = now
		}
	}
}

// Step advances the model by elapsed and re-evaluates the furnace at now.
func (h *House) Step(elapsed time.Duration, now time.Time) {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.heatOn {
		h.tempF += RampUpFPerSec * secs
		h.humidity = math.Max(h.humidity-DryingPerSec*secs, MinHumidity)
	} else {
		h.humidity = math.Min(h.humidity+RecoveryPerSec*secs, BaseHumidity)
	}
	// heat loss toward ambient applies either way
	h.tempF += (h.ambientF - h.tempF) * math.Min(LossPerSec*secs, 1)

	if now.Sub(h.sampledAt) >= time.Duration(h.sampleRate)*time.Second {
		h.sample(now)
	}
	h.considerFurnaceStateChange(now)
}

// sample reads the sensor. Caller holds mu (or owns h exclusively).
func (h *House) sample(now time.Time) {
	h.sampledTempF = h.tempF
	h.sampledHumidity = h.humidity
	h.sampledAt = now
}

// considerFurnaceStateChange turns heat on below target-swing and off at
// target+swing. Caller holds mu (or owns h exclusively).
func (h *House) considerFurnaceStateChange(now time.Time) {
	target := float64(h.target)
	switch {
	case !h.heatOn && h.tempF < target-HeatSwingF:
		h.heatOn = true
		h.heatStartedAt = now
		h.log.Infow("sim_heat_on", "temp_f", h.tempF, "target", h.target)
	case h.heatOn && h.tempF >= target+HeatSwingF:
		h.heatOn = false
		h.log.Infow("sim_heat_off", "temp_f", h.tempF, "target", h.target, "ran_for", now.Sub(h.heatStartedAt))
		h.heatStartedAt = time.Time{}
	}
}

// heatRunningFor is how long the current heat cycle has run; zero when idle.
func (h *House) heatRunningFor(now time.Time) time.Duration {
	if !h.heatOn || h.heatStartedAt.IsZero() {
		return 0
	}
	return now.Sub(h.heatStartedAt)
}

func (h *House) summary(now time.Time) string {
	if !h.heatOn {
		return summaryIdle
	}
	d := h.heatRunningFor(now)
	if d < time.Minute {
		return fmt.Sprintf("Heat running for %ds", int(d.Seconds()))
	}
	return fmt.Sprintf("Heat running for %dm", int(d.Minutes()))
}

// Reading renders "<temp>;<humidity>;<furnace_summary>" from the last sensor
// sample; the summary is always current.
func (h *House) Reading() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fmt.Sprintf("%.1f;%.0f%%;%s", h.sampledTempF, h.sampledHumidity, h.summary(h.now()))
}

// HeatStatus is HeatOn or HeatOff.
func (h *House) HeatStatus() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.heatOn {
		return HeatOn
	}
	return HeatOff
}

// SetTarget changes the setpoint and re-evaluates the furnace right away.
func (h *House) SetTarget(target int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.target = target
	h.log.Infow("sim_target_set", "target", target)
	h.considerFurnaceStateChange(h.now())
}

// SetSampleRate sets how many seconds pass between sensor samples.
func (h *House) SetSampleRate(seconds int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sampleRate = seconds
	h.log.Infow("sim_sample_rate_set", "seconds", seconds)
}

// Target returns the current setpoint.
func (h *House) Target() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.target
}

// SampleRate returns the last sample rate pushed by the panel.
func (h *House) SampleRate() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sampleRate
}
