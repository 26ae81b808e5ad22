package led

import (
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"

	"github.com/coreman2200/funtimes-countdown/internal/render"
)

// ShiftDev bit-bangs frames into the SN74HC595 chain over three lines:
// data, clock, latch. Bits are sampled on the rising clock edge; the latch
// commits all 32 shifted bits to the parallel outputs at once.
type ShiftDev struct {
	mu    sync.Mutex
	data  gpio.PinOut
	clock gpio.PinOut
	latch gpio.PinOut
}

// NewShift takes ownership of the three output pins and drives them low,
// the chain's rest state.
func NewShift(data, clock, latch gpio.PinOut) (*ShiftDev, error) {
	d := &ShiftDev{data: data, clock: clock, latch: latch}
	for _, p := range []gpio.PinOut{data, clock, latch} {
		if err := p.Out(gpio.Low); err != nil {
			return nil, errors.Wrapf(err, "init %s", p.Name())
		}
	}
	return d, nil
}

// Write serializes one frame: latch low, then the 4 bytes in row, red,
// green, blue order, each LSB first, then latch high. The color planes are
// inverted on the way out because the matrix is common cathode: a logical
// "on" bit must drive the color line low while the row line goes high.
func (d *ShiftDev) Write(f render.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.latch.Out(gpio.Low); err != nil {
		return errors.Wrap(err, "latch low")
	}
	for _, b := range [4]byte{f.Row, ^f.Red, ^f.Green, ^f.Blue} {
		if err := d.shiftByte(b); err != nil {
			return err
		}
	}
	if err := d.latch.Out(gpio.High); err != nil {
		return errors.Wrap(err, "latch high")
	}
	return nil
}

func (d *ShiftDev) shiftByte(b byte) error {
	for i := 0; i < 8; i++ {
		bit := gpio.Low
		if b&(1<<i) != 0 {
			bit = gpio.High
		}
		if err := d.data.Out(bit); err != nil {
			return errors.Wrap(err, "data")
		}
		if err := d.clock.Out(gpio.High); err != nil {
			return errors.Wrap(err, "clock high")
		}
		if err := d.clock.Out(gpio.Low); err != nil {
			return errors.Wrap(err, "clock low")
		}
	}
	return nil
}

// Close blanks the matrix and leaves the lines low.
func (d *ShiftDev) Close() error {
	if err := d.Write(render.Frame{}); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return errors.Wrap(d.latch.Out(gpio.Low), "latch low")
}
