// Package fake records frames instead of touching hardware, for headless
// tests of the render loop.
package fake

import (
	"sync"

	"github.com/coreman2200/funtimes-countdown/internal/render"
)

// Driver appends every written frame to Frames.
type Driver struct {
	mu     sync.Mutex
	Frames []render.Frame
	Closed bool

	// Err, when set, is returned from Write to exercise failure paths.
	Err error
}

func (d *Driver) Write(f render.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.Frames = append(d.Frames, f)
	return nil
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}

// Written returns a copy of the recorded frames.
func (d *Driver) Written() []render.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]render.Frame, len(d.Frames))
	copy(out, d.Frames)
	return out
}
