//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"segclock/app"
	"segclock/hal"
	"segclock/internal/buildinfo"
)

func main() {
	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.Version {
		fmt.Println(buildinfo.String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig) error {
	switch {
	case cfg.Board == boardPeriph:
		return runPeriph(ctx, cfg)
	case cfg.Headless:
		hc := hal.HeadlessConfig{
			Virtual:  cfg.Virtual,
			Duration: cfg.Duration,
			Report:   cfg.Report,
		}
		if cfg.Script != "" {
			s, err := hal.LoadScript(cfg.Script)
			if err != nil {
				return err
			}
			hc.Script = s
		}
		return hal.RunHeadless(ctx, app.NewRunner, hc)
	case cfg.TUI:
		return hal.RunTUI(ctx, app.NewRunner)
	}
	return hal.RunWindow(app.NewRunner)
}

func runPeriph(ctx context.Context, cfg appConfig) error {
	h, err := newPeriphHAL(cfg)
	if err != nil {
		return err
	}
	s, err := app.New(h)
	if err != nil {
		return err
	}
	defer s.Close()

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}
	err = s.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
