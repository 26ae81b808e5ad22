// Package button watches the start/reset push-button and toggles the
// countdown, standing in for the firmware's pin-change interrupt handler.
package button

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"

	"github.com/coreman2200/funtimes-countdown/internal/state"
)

// edgeTimeout bounds each WaitForEdge so cancellation is observed promptly.
const edgeTimeout = 500 * time.Millisecond

// Pin is the slice of gpio.PinIn the monitor needs. The pin must already be
// configured for both-edge interrupts.
type Pin interface {
	Read() gpio.Level
	WaitForEdge(timeout time.Duration) bool
}

// Monitor reacts to button edges. The pin fires on both transitions; only a
// high level acts, so releases fall through. There is deliberately no
// debounce, matching the original hardware behavior: a bouncy contact can
// double-toggle.
type Monitor struct {
	Pin Pin
	St  *state.State

	// ResetPhase rezeros the tick source when a countdown starts, so the
	// first interval is full length.
	ResetPhase func()

	Log zerolog.Logger
}

// Run blocks on edges until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !m.Pin.WaitForEdge(edgeTimeout) {
			continue
		}
		if m.Pin.Read() != gpio.High {
			continue
		}
		m.Press()
	}
}

// Press applies one press: start from idle, reset from anywhere else. It
// is also the hook for software-injected presses (SIGUSR1, tests).
func (m *Monitor) Press() {
	if m.St.Snapshot().Mode() == state.ModeIdle {
		m.St.StartRunning()
		if m.ResetPhase != nil {
			m.ResetPhase()
		}
		m.Log.Info().Msg("button: countdown started")
		return
	}
	m.St.ResetToIdle()
	m.Log.Info().Msg("button: reset to idle")
}
