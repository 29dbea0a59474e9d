package sim

import (
	"context"
	"time"
)

// Driver calls Tick at a fixed cadence, decoupling the simulation from any
// rendering or host loop. Correctness never depends on the rate: the dt
// passed to Tick is the configured interval, not the wall time between
// firings, so a slow host slows the simulation down rather than distorting
// it.
type Driver struct {
	sim      *Simulation
	interval time.Duration

	// OnTick, when non-nil, is called after every tick with its result.
	// It runs on the driver's goroutine, so it must not call back into the
	// driver's Run.
	OnTick func(TickResult)
}

// NewDriver creates a driver ticking at the given interval. Non-positive
// intervals fall back to the 20 Hz reference cadence.
func NewDriver(s *Simulation, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	return &Driver{sim: s, interval: interval}
}

// Interval returns the tick period.
func (d *Driver) Interval() time.Duration { return d.interval }

// Run ticks the simulation until the context is cancelled. It returns nil on
// cancellation; stopping and restarting is safe and idempotent since a paused
// simulation simply stops advancing.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	dt := d.interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			result := d.sim.Tick(dt)
			if d.OnTick != nil {
				d.OnTick(result)
			}
		}
	}
}

// Step advances the simulation by n ticks synchronously, without waiting on
// the wall clock. It is the driver's deterministic counterpart to Run, used
// by the CLI's bounded runs and by tests.
func (d *Driver) Step(n int) TickResult {
	dt := d.interval.Seconds()
	var last TickResult
	for i := 0; i < n; i++ {
		last = d.sim.Tick(dt)
		if d.OnTick != nil {
			d.OnTick(last)
		}
	}
	return last
}
