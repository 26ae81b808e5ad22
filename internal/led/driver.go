package led

import "github.com/coreman2200/funtimes-countdown/internal/render"

// Driver abstracts the matrix output sink.
type Driver interface {
	// Write pushes one frame to the shift-register chain.
	Write(f render.Frame) error
	// Close blanks the display and releases resources.
	Close() error
}
