package sim

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewDriver_IntervalFallback(t *testing.T) {
	s := newTestSim(t, 1, nil)
	d := NewDriver(s, 0)
	if d.Interval() != 50*time.Millisecond {
		t.Errorf("expected 20 Hz fallback, got %v", d.Interval())
	}

	d = NewDriver(s, 100*time.Millisecond)
	if d.Interval() != 100*time.Millisecond {
		t.Errorf("explicit interval not kept: %v", d.Interval())
	}
}

func TestStep_MatchesManualTicks(t *testing.T) {
	// Stepping through the driver and ticking the simulation directly must
	// be the same computation.
	s1 := newTestSim(t, 23, nil)
	s1.EnergizeByName("a", 1.0)
	d := NewDriver(s1, 50*time.Millisecond)
	stepped := d.Step(200)

	s2 := newTestSim(t, 23, nil)
	s2.EnergizeByName("a", 1.0)
	var manual TickResult
	for i := 0; i < 200; i++ {
		manual = s2.Tick(0.05)
	}

	if !reflect.DeepEqual(stepped.Nodes, manual.Nodes) {
		t.Error("Step diverged from manual ticking")
	}
	if !reflect.DeepEqual(stepped.Metrics, manual.Metrics) {
		t.Errorf("metrics diverged: %+v vs %+v", stepped.Metrics, manual.Metrics)
	}
}

func TestStep_CallsOnTick(t *testing.T) {
	s := newTestSim(t, 5, nil)
	d := NewDriver(s, 50*time.Millisecond)

	var calls int
	d.OnTick = func(TickResult) { calls++ }
	d.Step(7)
	if calls != 7 {
		t.Errorf("expected 7 OnTick calls, got %d", calls)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := newTestSim(t, 5, nil)
	d := NewDriver(s, time.Millisecond)

	var ticks atomic.Int64
	d.OnTick = func(TickResult) { ticks.Add(1) }

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v on cancellation", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
	if ticks.Load() == 0 {
		t.Error("driver never ticked before cancellation")
	}
}
