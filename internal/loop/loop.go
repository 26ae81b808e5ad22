// Package loop owns the render loop: the single consumer of the countdown
// state and the only writer to the shift-register chain.
package loop

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-countdown/internal/led"
	"github.com/coreman2200/funtimes-countdown/internal/render"
	"github.com/coreman2200/funtimes-countdown/internal/state"
)

// DefaultDwell is the overtime flash phase hold, straight from the
// firmware's 500 ms delays.
const DefaultDwell = 500 * time.Millisecond

// Loop re-renders and retransmits the matrix from a fresh state snapshot
// each pass. A running pass is one full 8-row scan; idle repaints a single
// all-row frame; overtime alternates solid red and blank with a fixed
// dwell on each phase. The dwell is deadline-based rather than a busy
// wait, but a button press during it is still only observed at the next
// snapshot, as on the original hardware.
type Loop struct {
	St  *state.State
	Drv led.Driver

	// Dwell overrides DefaultDwell when positive.
	Dwell time.Duration

	// Pace is the minimum duration of one idle/running pass. Zero spins
	// flat out like the firmware did.
	Pace time.Duration

	Log zerolog.Logger

	lastMode state.Mode
	started  bool
}

// Run renders until the context is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.pass(ctx); err != nil {
			return err
		}
	}
}

// pass renders one loop iteration from a single snapshot.
func (l *Loop) pass(ctx context.Context) error {
	snap := l.St.Snapshot()
	mode := snap.Mode()
	if !l.started || mode != l.lastMode {
		l.Log.Debug().Stringer("mode", mode).Uint8("counter", snap.Counter).Msg("render mode")
		l.lastMode = mode
		l.started = true
	}

	switch mode {
	case state.ModeIdle:
		if err := l.Drv.Write(render.Idle()); err != nil {
			return err
		}
		return l.wait(ctx, l.Pace)

	case state.ModeOvertime:
		dwell := l.Dwell
		if dwell <= 0 {
			dwell = DefaultDwell
		}
		if err := l.Drv.Write(render.OvertimeOn()); err != nil {
			return err
		}
		if err := l.wait(ctx, dwell); err != nil {
			return err
		}
		if err := l.Drv.Write(render.OvertimeOff()); err != nil {
			return err
		}
		return l.wait(ctx, dwell)
	}

	for _, f := range render.Scan(snap.Counter) {
		if err := l.Drv.Write(f); err != nil {
			return err
		}
	}
	return l.wait(ctx, l.Pace)
}

func (l *Loop) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
