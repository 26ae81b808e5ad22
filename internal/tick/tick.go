// Package tick drives the countdown at a fixed period, the software
// rendition of the firmware's compare-match timer interrupt.
package tick

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-countdown/internal/state"
)

// DefaultPeriod matches the original timer setup: a 16 MHz clock through a
// 1024 prescaler with a compare value of 58593 fires every 3.75 s.
const DefaultPeriod = 3750 * time.Millisecond

// Source advances the shared state once per period while a countdown is
// running. Ticks that land while idle or in overtime are absorbed by
// State.Tick.
type Source struct {
	st     *state.State
	period time.Duration
	t      *time.Ticker
	log    zerolog.Logger
}

// New creates a Source. The ticker starts immediately; phase only matters
// once a countdown starts, and the button monitor rezeros it then.
func New(st *state.State, period time.Duration, log zerolog.Logger) *Source {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Source{
		st:     st,
		period: period,
		t:      time.NewTicker(period),
		log:    log,
	}
}

// Reset rezeros the tick phase so the next tick is a full period away.
// Called on countdown start, like the firmware clearing its timer counter
// register on the start press.
func (s *Source) Reset() {
	s.t.Reset(s.period)
}

// Run consumes the ticker until the context is cancelled.
func (s *Source) Run(ctx context.Context) error {
	defer s.t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.t.C:
			snap := s.st.Tick()
			if snap.Mode() == state.ModeOvertime && snap.Counter == state.FinalTick+1 {
				s.log.Info().Uint8("counter", snap.Counter).Msg("countdown elapsed; overtime")
			} else if snap.Running {
				s.log.Debug().Uint8("counter", snap.Counter).Msg("tick")
			}
		}
	}
}
