package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Pins names the GPIO lines by their registry names (e.g. "GPIO2").
type Pins struct {
	Data   string `yaml:"data"`
	Clock  string `yaml:"clock"`
	Latch  string `yaml:"latch"`
	Button string `yaml:"button"`
}

// SPI configures the hardware-SPI transport.
type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0; empty picks the first port
	SpeedHz int    `yaml:"speed_hz"` // e.g. 1000000
}

type Config struct {
	Driver string `yaml:"driver"` // "gpio" | "spi" | "sim"

	Pins Pins `yaml:"pins"`
	SPI  SPI  `yaml:"spi,omitempty"`

	// TickMs is the countdown interval. The default reproduces the
	// original timer hardware: 3.75 s per tick, 64 ticks, ~4 minutes.
	TickMs int `yaml:"tick_ms"`

	// DwellMs is the hold time of each overtime flash phase.
	DwellMs int `yaml:"dwell_ms"`

	// FPS is the number of full matrix scans per second.
	FPS int `yaml:"fps"`
}

// Default is the runnable no-config-file setup: simulator output, original
// firmware timing, Raspberry Pi header pins for when a driver is selected.
func Default() *Config {
	return &Config{
		Driver:  "sim",
		Pins:    Pins{Data: "GPIO10", Clock: "GPIO11", Latch: "GPIO8", Button: "GPIO17"},
		SPI:     SPI{SpeedHz: 1000000},
		TickMs:  3750,
		DwellMs: 500,
		FPS:     100,
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) TickPeriod() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

func (c *Config) Dwell() time.Duration {
	return time.Duration(c.DwellMs) * time.Millisecond
}

// ScanInterval converts FPS into the minimum duration of one render pass.
func (c *Config) ScanInterval() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}
