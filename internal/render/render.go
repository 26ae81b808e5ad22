// Package render turns the countdown state into shift-register frames for
// the 8x8 GTM2088RGB matrix. Everything here is a pure function of the
// counter; no frame survives between passes.
package render

// Frame is one 4-byte payload for the shift-register chain: a row-select
// mask plus one mask per color plane. Bit b of a color mask addresses
// column b of whichever rows are selected. Masks are in logical "on"
// polarity; the output driver handles the common-cathode inversion.
type Frame struct {
	Row   byte
	Red   byte
	Green byte
	Blue  byte
}

// Growth tables for the sweep animation. Each entry widens the lit half-row
// by one LED; the two tables grow from opposite edges and are deliberately
// asymmetric (the second half of each table restarts from the far side).
// Index with counter%8.
var (
	growFromRight = [8]byte{0x01, 0x03, 0x07, 0x0F, 0x08, 0x0C, 0x0E, 0x0F}
	growFromLeft  = [8]byte{0x08, 0x0C, 0x0E, 0x0F, 0x01, 0x03, 0x07, 0x0F}
)

const (
	// fullRow is the fully-grown half-row mask used for rows the sweep
	// has already passed.
	fullRow = 0x0F

	// midpoint is the tick at which the sweep flips direction and edge.
	midpoint = 32
)

// Idle is the reset screen: every row selected at once, solid blue.
func Idle() Frame {
	return Frame{Row: 0xFF, Blue: 0xFF}
}

// OvertimeOn is the lit phase of the overtime flash: all rows solid red.
func OvertimeOn() Frame {
	return Frame{Row: 0xFF, Red: 0xFF}
}

// OvertimeOff is the dark phase of the overtime flash.
func OvertimeOff() Frame {
	return Frame{}
}

// Scan produces one full multiplexed pass for an active countdown tick,
// exactly 8 frames with one row selected each. For counter 0..31 rows scan
// top to bottom and the red sweep grows in from the right edge (high
// nibble); from 32 the scan reverses bottom to top and the sweep grows in
// from the left edge (low nibble, right half held lit). Green is always the
// complement of red, so the row reads as a red/green split. Blue stays off.
func Scan(counter uint8) [8]Frame {
	active := (counter / 4) % 8
	sub := counter % 8

	var out [8]Frame
	for j := uint8(0); j < 8; j++ {
		var f Frame
		if counter < midpoint {
			f.Row = 1 << (7 - j)
			switch {
			case j == active:
				f.Red = growFromRight[sub] << 4
			case j < active:
				f.Red = fullRow << 4
			}
		} else {
			f.Row = 1 << j
			switch {
			case j == active:
				f.Red = growFromLeft[sub] | 0xF0
			case j < active:
				f.Red = fullRow | 0xF0
			default:
				f.Red = 0xF0
			}
		}
		f.Green = ^f.Red
		out[j] = f
	}
	return out
}
