// Command countdown runs the matrix countdown controller: a 64-tick,
// roughly four minute timer on an 8x8 RGB matrix behind a chain of
// SN74HC595 shift registers, started and reset by a push-button.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-countdown/internal/button"
	"github.com/coreman2200/funtimes-countdown/internal/config"
	"github.com/coreman2200/funtimes-countdown/internal/led"
	"github.com/coreman2200/funtimes-countdown/internal/loop"
	"github.com/coreman2200/funtimes-countdown/internal/state"
	"github.com/coreman2200/funtimes-countdown/internal/tick"
)

var (
	configPath = pflag.StringP("config", "c", "countdown.yaml", "path to config file")
	driver     = pflag.String("driver", "", "override output driver: gpio | spi | sim")
	verbose    = pflag.BoolP("verbose", "v", false, "debug logging")
)

func main() {
	pflag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if !*verbose {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// ---- Config (optional file; flags override) ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		cfg = config.Default()
	}
	if *driver != "" {
		cfg.Driver = *driver
	}

	// ---- Hardware host ----
	if _, err := host.Init(); err != nil {
		log.Warn().Err(err).Msg("host init failed; forcing sim driver")
		cfg.Driver = "sim"
	}

	drv := openDriver(cfg)
	defer func() {
		if err := drv.Close(); err != nil {
			log.Warn().Err(err).Msg("driver close")
		}
	}()

	// ---- Countdown core ----
	st := state.New()
	ticks := tick.New(st, cfg.TickPeriod(), log.Logger)
	mon := &button.Monitor{
		St:         st,
		ResetPhase: ticks.Reset,
		Log:        log.Logger,
	}
	rl := &loop.Loop{
		St:    st,
		Drv:   drv,
		Dwell: cfg.Dwell(),
		Pace:  cfg.ScanInterval(),
		Log:   log.Logger,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ticks.Run(ctx) })
	g.Go(func() error { return rl.Run(ctx) })

	if pin := buttonPin(cfg); pin != nil {
		mon.Pin = pin
		g.Go(func() error { return mon.Run(ctx) })
	} else {
		log.Warn().Str("pin", cfg.Pins.Button).Msg("button pin unavailable; SIGUSR1 acts as the button")
	}

	// SIGUSR1 injects a press, useful headless and in sim mode.
	g.Go(func() error { return watchPressSignal(ctx, mon) })

	log.Info().
		Str("driver", cfg.Driver).
		Dur("tick", cfg.TickPeriod()).
		Msg("countdown controller up")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("controller stopped")
	}
	log.Info().Msg("shutting down")
}

// openDriver builds the configured output sink, falling back to the
// simulator whenever hardware is missing.
func openDriver(cfg *config.Config) led.Driver {
	switch cfg.Driver {
	case "gpio":
		data := gpioreg.ByName(cfg.Pins.Data)
		clock := gpioreg.ByName(cfg.Pins.Clock)
		latch := gpioreg.ByName(cfg.Pins.Latch)
		if data == nil || clock == nil || latch == nil {
			log.Warn().
				Str("data", cfg.Pins.Data).
				Str("clock", cfg.Pins.Clock).
				Str("latch", cfg.Pins.Latch).
				Msg("shift register pins unavailable; falling back to sim")
			break
		}
		d, err := led.NewShift(data, clock, latch)
		if err != nil {
			log.Warn().Err(err).Msg("gpio driver init failed; falling back to sim")
			break
		}
		return d

	case "spi":
		port, err := spireg.Open(cfg.SPI.Dev)
		if err != nil {
			log.Warn().Err(err).Str("dev", cfg.SPI.Dev).Msg("spi open failed; falling back to sim")
			break
		}
		d, err := led.NewSPI(port, physic.Frequency(cfg.SPI.SpeedHz)*physic.Hertz)
		if err != nil {
			_ = port.Close()
			log.Warn().Err(err).Msg("spi driver init failed; falling back to sim")
			break
		}
		return d

	case "sim":

	default:
		log.Warn().Str("driver", cfg.Driver).Msg("unknown driver; using sim")
	}
	return led.NewSim(screen.New(64))
}

// buttonPin looks up and configures the start/reset button for both-edge
// interrupts, or returns nil when no such pin exists on this host.
func buttonPin(cfg *config.Config) gpio.PinIn {
	p := gpioreg.ByName(cfg.Pins.Button)
	if p == nil {
		return nil
	}
	if err := p.In(gpio.PullDown, gpio.BothEdges); err != nil {
		log.Warn().Err(err).Str("pin", cfg.Pins.Button).Msg("button pin setup failed")
		return nil
	}
	return p
}

func watchPressSignal(ctx context.Context, mon *button.Monitor) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	defer signal.Stop(ch)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
			log.Debug().Msg("SIGUSR1 press")
			mon.Press()
		}
	}
}
