package led

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/display"

	"github.com/coreman2200/funtimes-countdown/internal/render"
)

// Sim emulates persistence of vision for headless runs: scanned rows
// accumulate into a framebuffer that is repainted through a display.Drawer
// (the ANSI terminal strip from periph.io/x/extra in practice) whenever it
// changes, so a full multiplexed scan reads as one lit matrix.
type Sim struct {
	drawer display.Drawer
	fb     [8]render.Frame
}

// NewSim wraps a drawer. The drawer's bounds should fit 64 pixels; the
// matrix is painted row-major as one strip.
func NewSim(d display.Drawer) *Sim {
	return &Sim{drawer: d}
}

// Write folds the frame into the framebuffer and repaints on change. Bit 7
// of the row mask is the top row; bit 7 of a color mask is the leftmost
// column.
func (s *Sim) Write(f render.Frame) error {
	changed := false
	for r := 0; r < 8; r++ {
		if f.Row&(1<<(7-r)) == 0 {
			continue
		}
		if s.fb[r] != f {
			s.fb[r] = f
			changed = true
		}
	}
	// An all-zero row mask blanks the matrix (the overtime dark phase).
	if f.Row == 0 {
		for r := range s.fb {
			if s.fb[r] != (render.Frame{}) {
				s.fb[r] = render.Frame{}
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	return errors.Wrap(s.drawer.Draw(s.drawer.Bounds(), s.image(), image.Point{}), "sim draw")
}

func (s *Sim) image() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, 64, 1))
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			bit := byte(1) << (7 - c)
			var px color.NRGBA
			px.A = 255
			if s.fb[r].Red&bit != 0 {
				px.R = 255
			}
			if s.fb[r].Green&bit != 0 {
				px.G = 255
			}
			if s.fb[r].Blue&bit != 0 {
				px.B = 255
			}
			im.SetNRGBA(r*8+c, 0, px)
		}
	}
	return im
}

// Close blanks the framebuffer and halts the drawer.
func (s *Sim) Close() error {
	s.fb = [8]render.Frame{}
	return s.drawer.Halt()
}
