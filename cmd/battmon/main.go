// Command battmon samples an INA219 and an AHTx0 and rotates battery
// health pages on an HD44780 until SIGINT or SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"battmon/errcode"
	"battmon/services/config"
	"battmon/services/hal"
	"battmon/services/monitor"
)

// Dotenv files read after the embedded profile, later files win.
var envFiles = []string{"/etc/battmon/battmon.env", ".env"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, log.Default(), hal.Open)
	stop()
	os.Exit(code)
}

type openFunc func(config.Config) (*hal.Devices, error)

func run(ctx context.Context, lg *log.Logger, open openFunc) int {
	cfg, err := config.Load("", envFiles...)
	if err != nil {
		lg.Printf("Error: %s: %v", errcode.Of(err), err)
		return 1
	}
	lg.Printf("profile %s: %dx%d lcd at %#x, ina219 at %#x, aht at %#x",
		cfg.Profile, cfg.Geometry.Cols, cfg.Geometry.Rows, cfg.LCDAddr, cfg.INA219Addr, cfg.AHTAddr)

	devs, err := open(cfg)
	if err != nil {
		lg.Printf("Error: %s: %v", errcode.Of(err), err)
		return 1
	}
	defer func() {
		if err := devs.Close(); err != nil {
			lg.Printf("close i2c bus: %v", err)
		}
	}()

	m, err := monitor.New(monitor.Config{
		Power:       devs.Power,
		Env:         devs.Env,
		Display:     devs.Display,
		Calibration: cfg.Calibration,
		Geometry:    cfg.Geometry,
		Logger:      lg,
	})
	if err != nil {
		lg.Printf("Error: %s: %v", errcode.Of(err), err)
		return 1
	}

	out := m.Run(ctx)
	lg.Printf("monitor %s after %d cycles", out.Status, out.Cycles)
	if out.Status == monitor.Failed {
		return 1
	}
	return 0
}
