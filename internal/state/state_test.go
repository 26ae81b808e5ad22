package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/coreman2200/funtimes-countdown/internal/state"
)

func TestBootState(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	assert.Equal(t, IdleCounter, snap.Counter)
	assert.False(t, snap.Running)
	assert.Equal(t, ModeIdle, snap.Mode())
}

func TestStartFromIdle(t *testing.T) {
	s := New()
	s.StartRunning()
	snap := s.Snapshot()
	assert.Equal(t, uint8(0), snap.Counter)
	assert.True(t, snap.Running)
	assert.Equal(t, ModeRunning, snap.Mode())
}

func TestTickIsNoOpWhileIdle(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	assert.Equal(t, Snapshot{Counter: IdleCounter, Running: false}, s.Snapshot())
}

func TestTickMonotonicUntilFreeze(t *testing.T) {
	s := New()
	s.StartRunning()

	for want := uint8(1); want <= FinalTick; want++ {
		snap := s.Tick()
		assert.Equal(t, want, snap.Counter)
		assert.True(t, snap.Running, "counter %d", want)
	}

	// 64th increment from zero freezes at 64, not reset, not clamped.
	snap := s.Tick()
	assert.Equal(t, FinalTick+1, snap.Counter)
	assert.False(t, snap.Running)
	assert.Equal(t, ModeOvertime, snap.Mode())

	// Frozen: further ticks leave the record untouched.
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	assert.Equal(t, Snapshot{Counter: FinalTick + 1, Running: false}, s.Snapshot())
}

func TestResetFromRunning(t *testing.T) {
	s := New()
	s.StartRunning()
	for i := 0; i < 17; i++ {
		s.Tick()
	}
	s.ResetToIdle()
	assert.Equal(t, Snapshot{Counter: IdleCounter, Running: false}, s.Snapshot())
}

func TestResetFromOvertime(t *testing.T) {
	s := New()
	s.StartRunning()
	for i := 0; i <= int(FinalTick); i++ {
		s.Tick()
	}
	assert.Equal(t, ModeOvertime, s.Snapshot().Mode())

	s.ResetToIdle()
	assert.Equal(t, Snapshot{Counter: IdleCounter, Running: false}, s.Snapshot())
}

func TestModeBoundaries(t *testing.T) {
	for _, tc := range []struct {
		counter uint8
		want    Mode
	}{
		{0, ModeRunning},
		{32, ModeRunning},
		{63, ModeRunning},
		{64, ModeOvertime},
		{254, ModeOvertime},
		{255, ModeIdle},
	} {
		assert.Equal(t, tc.want, Snapshot{Counter: tc.counter}.Mode(), "counter %d", tc.counter)
	}
}
