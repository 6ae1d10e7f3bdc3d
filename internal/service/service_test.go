package service

import (
	"context"
	"testing"
	"time"

	"thermostat_panel/internal/models"
	"thermostat_panel/internal/repository"
)

func TestNewService_WiresSharedState(t *testing.T) {
	repos := repository.NewRepository(models.PanelState{Target: 70, PollInterval: 10}, 50)
	backend := &fakeBackend{}
	svc := NewService(repos, backend, nil, nil, Options{Debounce: time.Hour, HeatStatusEvery: time.Hour})
	defer svc.Target.Cancel()

	if _, err := svc.Increment(context.Background()); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if _, err := svc.SetInterval(context.Background(), "20"); err != nil {
		t.Fatalf("set interval: %v", err)
	}

	st, err := svc.GetState(context.Background())
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if st.Target != 71 || st.PollInterval != 20 {
		t.Fatalf("controllers and monitoring disagree: %+v", st)
	}

	evs, err := svc.List(context.Background(), LogFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected TARGET_CHANGE and INTERVAL_PUSHED, got %+v", evs)
	}
}
