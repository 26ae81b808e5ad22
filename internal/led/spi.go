package led

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/coreman2200/funtimes-countdown/internal/render"
)

// DefaultSPISpeed is comfortably inside the 74HC595's shift clock rating.
const DefaultSPISpeed = 1 * physic.MegaHertz

// reversed maps each byte to its bit-reversed form. The chain wants LSB
// first but SPI controllers clock MSB first, so every byte is flipped
// before transmission.
var reversed [256]byte

func init() {
	for v := 0; v < 256; v++ {
		var r byte
		for i := 0; i < 8; i++ {
			r = r<<1 | byte(v>>i)&1
		}
		reversed[v] = r
	}
}

// SPIDev pushes frames through a hardware SPI controller. Electrically the
// 3-wire link is MOSI/SCLK with chip-select wired to the latch pin; CS
// framing around each 4-byte transaction provides the latch pulse.
type SPIDev struct {
	port spi.PortCloser
	conn spi.Conn
}

// NewSPI connects to an opened SPI port at the given speed (0 selects
// DefaultSPISpeed).
func NewSPI(port spi.PortCloser, speed physic.Frequency) (*SPIDev, error) {
	if speed == 0 {
		speed = DefaultSPISpeed
	}
	conn, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, errors.Wrap(err, "spi connect")
	}
	return &SPIDev{port: port, conn: conn}, nil
}

// Write transmits one frame, color planes inverted for the common-cathode
// matrix and all bytes bit-reversed for the LSB-first chain.
func (d *SPIDev) Write(f render.Frame) error {
	w := []byte{
		reversed[f.Row],
		reversed[^f.Red],
		reversed[^f.Green],
		reversed[^f.Blue],
	}
	return errors.Wrap(d.conn.Tx(w, nil), "spi tx")
}

// Close blanks the matrix and releases the port.
func (d *SPIDev) Close() error {
	if err := d.Write(render.Frame{}); err != nil {
		return err
	}
	return d.port.Close()
}
