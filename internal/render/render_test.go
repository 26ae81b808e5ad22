package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdleFrame(t *testing.T) {
	assert.Equal(t, Frame{Row: 0xFF, Red: 0x00, Green: 0x00, Blue: 0xFF}, Idle())
}

func TestOvertimeFrames(t *testing.T) {
	assert.Equal(t, Frame{Row: 0xFF, Red: 0xFF, Green: 0x00, Blue: 0x00}, OvertimeOn())
	assert.Equal(t, Frame{}, OvertimeOff())
}

// Every counter must yield a true one-row-at-a-time scan: 8 pairwise
// distinct single-bit row masks covering all 8 positions.
func TestScanCoversEveryRowOnce(t *testing.T) {
	for counter := uint8(0); counter <= 63; counter++ {
		var seen byte
		for _, f := range Scan(counter) {
			assert.Equal(t, 1, popcount(f.Row), "counter %d row mask %#02x", counter, f.Row)
			assert.Zero(t, seen&f.Row, "counter %d duplicate row %#02x", counter, f.Row)
			seen |= f.Row
		}
		assert.Equal(t, byte(0xFF), seen, "counter %d", counter)
	}
}

func TestScanGreenComplementsRedAndBlueOff(t *testing.T) {
	for counter := uint8(0); counter <= 63; counter++ {
		for j, f := range Scan(counter) {
			assert.Equal(t, ^f.Red, f.Green, "counter %d row %d", counter, j)
			assert.Zero(t, f.Blue, "counter %d row %d", counter, j)
		}
	}
}

// First pass after a start press: counter=0, active row 0, sub-phase 0.
func TestScanStartOfCountdown(t *testing.T) {
	frames := Scan(0)

	// Row order is top to bottom, so scan index 0 selects bit 7.
	assert.Equal(t, Frame{Row: 0x80, Red: 0x10, Green: 0xEF, Blue: 0x00}, frames[0])

	// Rows ahead of the sweep are still all green.
	assert.Equal(t, Frame{Row: 0x40, Red: 0x00, Green: 0xFF, Blue: 0x00}, frames[1])
	assert.Equal(t, Frame{Row: 0x01, Red: 0x00, Green: 0xFF, Blue: 0x00}, frames[7])
}

func TestScanFirstHalfSweptRowsFullyRed(t *testing.T) {
	// counter=13: active row 3, sub-phase 5.
	frames := Scan(13)

	assert.Equal(t, byte(1<<(7-3)), frames[3].Row)
	assert.Equal(t, growFromRight[5]<<4, frames[3].Red)

	for j := 0; j < 3; j++ {
		assert.Equal(t, byte(0xF0), frames[j].Red, "swept row %d", j)
	}
	for j := 4; j < 8; j++ {
		assert.Equal(t, byte(0x00), frames[j].Red, "pending row %d", j)
	}
}

// At the midpoint the scan reverses direction and the sweep switches edges.
func TestScanSecondHalfMirrors(t *testing.T) {
	frames := Scan(32)

	// Bottom-to-top: scan index 0 selects bit 0.
	assert.Equal(t, byte(0x01), frames[0].Row)
	assert.Equal(t, growFromLeft[0]|0xF0, frames[0].Red)
	assert.Equal(t, byte(0xF8), frames[0].Red)

	// Rows the return sweep has not reached keep the left half lit.
	for j := 1; j < 8; j++ {
		assert.Equal(t, byte(0xF0), frames[j].Red, "pending row %d", j)
		assert.Equal(t, byte(1)<<j, frames[j].Row, "row mask %d", j)
	}
}

func TestScanLastTickAllRed(t *testing.T) {
	for j, f := range Scan(63) {
		assert.Equal(t, byte(0xFF), f.Red, "row %d", j)
		assert.Equal(t, byte(0x00), f.Green, "row %d", j)
	}
}

func popcount(b byte) int {
	n := 0
	for ; b != 0; b &= b - 1 {
		n++
	}
	return n
}
