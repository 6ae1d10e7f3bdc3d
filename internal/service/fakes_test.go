package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/metrics"
	"thermostat_panel/internal/models"
	"thermostat_panel/internal/repository"
)

// fakeBackend records every call and answers with the configured values.
type fakeBackend struct {
	mu sync.Mutex

	readings   models.Readings
	readingErr error
	status     string
	statusErr  error
	updateErr  error

	readingCalls int
	statusCalls  int
	targets      []int
	sampleRates  []int

	pushed chan int // receives every UpdateTarget value when non-nil
}

func (f *fakeBackend) CurrentTemp(ctx context.Context) (models.Readings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readingCalls++
	return f.readings, f.readingErr
}

func (f *fakeBackend) HeatStatus(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	return f.status, f.statusErr
}

func (f *fakeBackend) UpdateSampleRate(ctx context.Context, seconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sampleRates = append(f.sampleRates, seconds)
	return f.updateErr
}

func (f *fakeBackend) UpdateTarget(ctx context.Context, target int) error {
	f.mu.Lock()
	f.targets = append(f.targets, target)
	err := f.updateErr
	ch := f.pushed
	f.mu.Unlock()
	if ch != nil {
		ch <- target
	}
	return err
}

func (f *fakeBackend) snapshot() (targets, rates []int, readingCalls, statusCalls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.targets...), append([]int(nil), f.sampleRates...), f.readingCalls, f.statusCalls
}

// countingRecorder counts metric calls by name.
type countingRecorder struct {
	mu     sync.Mutex
	gauges map[string]float64
	incrs  map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{gauges: map[string]float64{}, incrs: map[string]int{}}
}

func (r *countingRecorder) Gauge(name string, value float64, tags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauges[name] = value
}

func (r *countingRecorder) Incr(name string, tags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.incrs[name]++
}

var _ metrics.Recorder = (*countingRecorder)(nil)

type fixture struct {
	state   *repository.StateMemory
	events  *repository.EventMemory
	backend *fakeBackend
	rec     *countingRecorder
	deps    deps
}

func newFixture(t *testing.T, initial models.PanelState) *fixture {
	t.Helper()
	f := &fixture{
		state:   repository.NewStateMemory(initial),
		events:  repository.NewEventMemory(100),
		backend: &fakeBackend{},
		rec:     newCountingRecorder(),
	}
	f.deps = deps{
		stateRepo: f.state,
		eventRepo: f.events,
		backend:   f.backend,
		metrics:   f.rec,
		log:       logger.Nop(),
	}
	return f
}

func (f *fixture) load(t *testing.T) models.PanelState {
	t.Helper()
	st, err := f.state.Load(context.Background())
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	return st
}

func (f *fixture) eventsOfType(t *testing.T, typ string) []models.PanelEvent {
	t.Helper()
	evs, err := f.events.List(context.Background(), time.Time{}, time.Time{}, typ)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	return evs
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
