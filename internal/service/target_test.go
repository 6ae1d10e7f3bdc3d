package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"thermostat_panel/internal/metrics"
	"thermostat_panel/internal/models"
)

const testDebounce = 30 * time.Millisecond

func TestTargetService_IncrementAcceptsBelowCeiling(t *testing.T) {
	for start := models.MinTarget; start < models.MaxTarget; start++ {
		f := newFixture(t, models.PanelState{Target: start})
		svc := NewTargetService(f.deps, time.Hour)

		got, err := svc.Increment(context.Background())
		if err != nil {
			t.Fatalf("increment from %d: unexpected error %v", start, err)
		}
		if got != start+1 || f.load(t).Target != start+1 {
			t.Fatalf("increment from %d: got %d, state %d", start, got, f.load(t).Target)
		}
		if !svc.Pending() {
			t.Fatalf("increment from %d: expected a pending push", start)
		}
		svc.Cancel()
	}
}

func TestTargetService_IncrementFrom79Rejected(t *testing.T) {
	f := newFixture(t, models.PanelState{Target: models.MaxTarget})
	svc := NewTargetService(f.deps, testDebounce)

	got, err := svc.Increment(context.Background())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Message != MsgTargetTooHigh {
		t.Fatalf("unexpected message %q", vErr.Message)
	}
	if got != models.MaxTarget {
		t.Fatalf("expected unchanged target 79, got %d", got)
	}
	st := f.load(t)
	if st.Target != models.MaxTarget || st.Notice != MsgTargetTooHigh {
		t.Fatalf("unexpected state after rejection: %+v", st)
	}
	if svc.Pending() {
		t.Fatalf("rejected edit must not schedule a push")
	}
	if len(f.eventsOfType(t, models.EventRejected)) != 1 {
		t.Fatalf("expected one REJECTED event")
	}
	if f.rec.incrs[metrics.Rejected] != 1 {
		t.Fatalf("expected rejected counter to be bumped")
	}
}

func TestTargetService_DecrementAcceptsAboveFloor(t *testing.T) {
	for start := models.MinTarget + 1; start <= models.MaxTarget; start++ {
		f := newFixture(t, models.PanelState{Target: start})
		svc := NewTargetService(f.deps, time.Hour)

		got, err := svc.Decrement(context.Background())
		if err != nil {
			t.Fatalf("decrement from %d: unexpected error %v", start, err)
		}
		if got != start-1 || f.load(t).Target != start-1 {
			t.Fatalf("decrement from %d: got %d", start, got)
		}
		svc.Cancel()
	}
}

func TestTargetService_DecrementFrom60Rejected(t *testing.T) {
	f := newFixture(t, models.PanelState{Target: models.MinTarget})
	svc := NewTargetService(f.deps, testDebounce)

	got, err := svc.Decrement(context.Background())
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Message != MsgTargetTooLow {
		t.Fatalf("expected too-low ValidationError, got %v", err)
	}
	if got != models.MinTarget || f.load(t).Target != models.MinTarget {
		t.Fatalf("target must stay 60, got %d", got)
	}
}

func TestTargetService_AcceptedEditClearsNotice(t *testing.T) {
	f := newFixture(t, models.PanelState{Target: 70, Notice: "old"})
	svc := NewTargetService(f.deps, time.Hour)
	defer svc.Cancel()

	if _, err := svc.Decrement(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := f.load(t).Notice; n != "" {
		t.Fatalf("expected notice cleared, got %q", n)
	}
}

func TestTargetService_PushesAfterDebounceAndConfirms(t *testing.T) {
	f := newFixture(t, models.PanelState{Target: 70})
	f.backend.pushed = make(chan int, 4)
	svc := NewTargetService(f.deps, testDebounce)

	start := time.Now()
	if _, err := svc.Increment(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case v := <-f.backend.pushed:
		if v != 71 {
			t.Fatalf("pushed %d, want 71", v)
		}
		if elapsed := time.Since(start); elapsed < testDebounce {
			t.Fatalf("pushed after %v, before the debounce window", elapsed)
		}
	case <-time.After(time.Second):
		t.Fatalf("push never happened")
	}

	waitFor(t, time.Second, func() bool { return f.load(t).ConfirmSeq == 1 })
	waitFor(t, time.Second, func() bool { return len(f.eventsOfType(t, models.EventTargetPushed)) == 1 })
	if svc.Pending() {
		t.Fatalf("no push should be pending after it fired")
	}
}

func TestTargetService_RapidEditsCollapseIntoOnePush(t *testing.T) {
	f := newFixture(t, models.PanelState{Target: 70})
	f.backend.pushed = make(chan int, 4)
	svc := NewTargetService(f.deps, 80*time.Millisecond)

	for i := 0; i < 3; i++ {
		if _, err := svc.Increment(context.Background()); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}
	if _, err := svc.Decrement(context.Background()); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	select {
	case v := <-f.backend.pushed:
		if v != 72 {
			t.Fatalf("pushed %d, want final value 72", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("push never happened")
	}

	// give any stray timer a chance to fire
	time.Sleep(200 * time.Millisecond)
	targets, _, _, _ := f.backend.snapshot()
	if len(targets) != 1 {
		t.Fatalf("expected exactly one push, got %v", targets)
	}
	if got := len(f.eventsOfType(t, models.EventTargetChange)); got != 4 {
		t.Fatalf("expected 4 TARGET_CHANGE events, got %d", got)
	}
}

func TestTargetService_CancelDropsPendingPush(t *testing.T) {
	f := newFixture(t, models.PanelState{Target: 70})
	svc := NewTargetService(f.deps, testDebounce)

	if svc.Cancel() {
		t.Fatalf("nothing pending yet")
	}
	if _, err := svc.Increment(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.Cancel() {
		t.Fatalf("expected the pending push to be dropped")
	}

	time.Sleep(3 * testDebounce)
	if targets, _, _, _ := f.backend.snapshot(); len(targets) != 0 {
		t.Fatalf("cancelled push was sent: %v", targets)
	}
	if f.load(t).Target != 71 {
		t.Fatalf("cancel must not roll back the displayed target")
	}
}

func TestTargetService_PushFailureIsLoggedNotRetried(t *testing.T) {
	f := newFixture(t, models.PanelState{Target: 70})
	f.backend.updateErr = errors.New("connection refused")
	f.backend.pushed = make(chan int, 4)
	svc := NewTargetService(f.deps, testDebounce)

	if _, err := svc.Increment(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-f.backend.pushed:
	case <-time.After(time.Second):
		t.Fatalf("push never happened")
	}

	waitFor(t, time.Second, func() bool { return len(f.eventsOfType(t, models.EventError)) == 1 })
	time.Sleep(3 * testDebounce)

	if targets, _, _, _ := f.backend.snapshot(); len(targets) != 1 {
		t.Fatalf("expected a single attempt, got %v", targets)
	}
	st := f.load(t)
	if st.ConfirmSeq != 0 {
		t.Fatalf("failed push must not confirm, seq=%d", st.ConfirmSeq)
	}
	if st.Target != 71 {
		t.Fatalf("optimistic target must stay, got %d", st.Target)
	}
}

func TestTargetService_ConcurrentEditsPushDisplayedTarget(t *testing.T) {
	const (
		rounds   = 50
		editors  = 8
		debounce = 10 * time.Millisecond
	)
	for round := 0; round < rounds; round++ {
		f := newFixture(t, models.PanelState{Target: 70})
		svc := NewTargetService(f.deps, debounce)

		var wg sync.WaitGroup
		for i := 0; i < editors; i++ {
			wg.Add(1)
			go func(up bool) {
				defer wg.Done()
				if up {
					_, _ = svc.Increment(context.Background())
				} else {
					_, _ = svc.Decrement(context.Background())
				}
			}(i%2 == 0)
		}
		wg.Wait()

		waitFor(t, time.Second, func() bool {
			targets, _, _, _ := f.backend.snapshot()
			return !svc.Pending() && len(targets) > 0
		})
		time.Sleep(2 * debounce)

		targets, _, _, _ := f.backend.snapshot()
		if want := f.load(t).Target; targets[len(targets)-1] != want {
			t.Fatalf("round %d: state target %d, pushed %v", round, want, targets)
		}
	}
}
