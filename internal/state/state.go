// Package state holds the shared countdown record mutated by the button
// monitor and the tick source while the render loop reads it. It is the
// only mutable state in the process.
package state

import "sync"

const (
	// IdleCounter is the reset sentinel: nothing is counting and the
	// matrix shows the waiting screen.
	IdleCounter uint8 = 255

	// FinalTick is the last active countdown tick. The first increment
	// past it freezes the counter and the display enters overtime.
	FinalTick uint8 = 63
)

// Mode classifies a snapshot for the render loop. Modes are derived from
// the counter alone, mirroring how the firmware's main loop dispatched.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRunning
	ModeOvertime
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRunning:
		return "running"
	case ModeOvertime:
		return "overtime"
	}
	return "unknown"
}

// Snapshot is a consistent copy of the record. The render loop takes one
// per pass and never re-reads mid-pass; changes that land mid-pass are
// picked up on the next pass.
type Snapshot struct {
	Counter uint8
	Running bool
}

// Mode returns the rendering mode for this snapshot.
func (s Snapshot) Mode() Mode {
	switch {
	case s.Counter == IdleCounter:
		return ModeIdle
	case s.Counter > FinalTick:
		return ModeOvertime
	}
	return ModeRunning
}

// State is the countdown record. All accessors are safe to call from any
// goroutine; the mutex stands in for the interrupt masking the firmware
// relied on, so a reader never observes a torn counter/running pair.
type State struct {
	mu      sync.Mutex
	counter uint8
	running bool
}

// New returns the boot state: idle, not running.
func New() *State {
	return &State{counter: IdleCounter}
}

// Snapshot returns the current counter/running pair as one atomic read.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Counter: s.counter, Running: s.running}
}

// StartRunning begins a countdown from tick zero.
func (s *State) StartRunning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter = 0
	s.running = true
}

// ResetToIdle stops any countdown or overtime and restores the sentinel.
func (s *State) ResetToIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter = IdleCounter
	s.running = false
}

// Tick advances the counter by one interval. Past FinalTick the counter
// freezes (it is not wrapped or clamped) and running drops, which is what
// keeps the overtime display up until the next button press. Tick is a
// no-op while not running. It returns the post-tick snapshot.
func (s *State) Tick() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.counter++
		if s.counter > FinalTick {
			s.running = false
		}
	}
	return Snapshot{Counter: s.counter, Running: s.running}
}
