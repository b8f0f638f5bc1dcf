// Package hal binds the monitor's sensor and display interfaces to real
// hardware on one I2C bus.
package hal

import (
	"errors"

	"tinygo.org/x/drivers"

	"battmon/drivers/ahtx0"
	"battmon/services/config"
)

// I2CBus is a tinygo-shaped bus the process owns and must close.
type I2CBus interface {
	drivers.I2C
	Close() error
}

// Devices holds the attached hardware. Its fields satisfy the monitor's
// PowerSensor, EnvSensor and Display interfaces.
type Devices struct {
	Bus     I2CBus
	Power   *PowerSource
	Env     *EnvSource
	Display *Display
}

// Open opens the configured bus and attaches every device on it.
func Open(cfg config.Config) (*Devices, error) {
	bus, err := OpenI2C(cfg.I2CBus)
	if err != nil {
		return nil, err
	}
	return Attach(bus, cfg)
}

// Attach initialises the display, the INA219 and the AHTx0 on bus. On
// failure the bus is closed.
func Attach(bus I2CBus, cfg config.Config) (*Devices, error) {
	d := &Devices{Bus: bus}
	var err error
	if d.Display, err = NewDisplay(bus, cfg.LCDAddr, cfg.Geometry); err != nil {
		return nil, closeOnError(bus, err)
	}
	if d.Power, err = NewPowerSource(bus, cfg.INA219Addr, cfg.Calibration.ShuntOhms); err != nil {
		return nil, closeOnError(bus, err)
	}
	if d.Env, err = NewEnvSource(bus, ahtx0.Config{Address: cfg.AHTAddr, VerifyCRC: true}); err != nil {
		return nil, closeOnError(bus, err)
	}
	return d, nil
}

func (d *Devices) Close() error {
	return d.Bus.Close()
}

func closeOnError(bus I2CBus, err error) error {
	return errors.Join(err, bus.Close())
}
