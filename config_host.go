//go:build !tinygo

package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	boardHost   = "host"
	boardPeriph = "periph"
)

type appConfig struct {
	Headless bool          `mapstructure:"headless"`
	TUI      bool          `mapstructure:"tui"`
	Virtual  bool          `mapstructure:"virtual"`
	Duration time.Duration `mapstructure:"duration"`
	Script   string        `mapstructure:"script"`
	Report   time.Duration `mapstructure:"report"`
	Board    string        `mapstructure:"board"`
	IIOPath  string        `mapstructure:"iio-path"`
	IIOMax   int           `mapstructure:"iio-max"`
	Version  bool          `mapstructure:"-"` // flag only
}

// loadConfig layers command-line flags over SEGCLOCK_* environment
// variables over built-in defaults.
func loadConfig(fs *flag.FlagSet, args []string) (appConfig, error) {
	var cfg appConfig

	fs.Bool("headless", false, "Run without a window.")
	fs.Bool("tui", false, "Run the terminal simulator.")
	fs.Bool("virtual", false, "Headless: run on a simulated clock as fast as possible (needs -duration).")
	fs.Duration("duration", 0, "Stop after this long (0 = run until interrupted).")
	fs.String("script", "", "Headless: YAML file of timed button and pot changes.")
	fs.Duration("report", time.Second, "Headless: log the display this often (0 = only at exit).")
	fs.String("board", boardHost, "Board backend: host (simulator) or periph (Linux GPIO).")
	fs.String("iio-path", "/sys/bus/iio/devices/iio:device0/in_voltage0_raw", "periph: sysfs file with the raw pot reading.")
	fs.Int("iio-max", 1023, "periph: full-scale raw pot reading.")
	fs.BoolVar(&cfg.Version, "version", false, "Print the version and exit.")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetEnvPrefix("SEGCLOCK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	fs.VisitAll(func(f *flag.Flag) {
		if f.Name != "version" {
			v.SetDefault(f.Name, f.DefValue)
		}
	})
	fs.Visit(func(f *flag.Flag) {
		if f.Name != "version" {
			v.Set(f.Name, f.Value.String())
		}
	})

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c appConfig) validate() error {
	switch c.Board {
	case boardHost, boardPeriph:
	default:
		return fmt.Errorf("config: unknown board %q", c.Board)
	}
	if c.Headless && c.TUI {
		return errors.New("config: -headless and -tui are exclusive")
	}
	if c.Virtual && !c.Headless {
		return errors.New("config: -virtual needs -headless")
	}
	if c.Virtual && c.Duration <= 0 {
		return errors.New("config: -virtual needs -duration")
	}
	if c.Duration < 0 || c.Report < 0 {
		return errors.New("config: durations must not be negative")
	}
	if c.Board == boardPeriph && (c.TUI || c.Virtual || c.Script != "") {
		return errors.New("config: the periph board runs headless in real time only")
	}
	return nil
}
