package hal

import (
	"tinygo.org/x/drivers"

	"battmon/drivers/ahtx0"
	"battmon/errcode"
)

// EnvSource reads an AHT20/AHT25. Every call takes a fresh measurement.
type EnvSource struct {
	dev ahtx0.Device
}

func NewEnvSource(bus drivers.I2C, cfg ahtx0.Config) (*EnvSource, error) {
	dev := ahtx0.New(bus)
	if err := dev.Configure(cfg); err != nil {
		return nil, errcode.Wrap(errcode.SensorRead, "ahtx0 configure", err)
	}
	return &EnvSource{dev: dev}, nil
}

func (e *EnvSource) ReadTemperature() (float64, error) {
	s, err := e.dev.Read()
	if err != nil {
		return 0, errcode.Wrap(errcode.SensorRead, "ahtx0 temperature", err)
	}
	return s.Celsius(), nil
}

func (e *EnvSource) ReadRelativeHumidity() (float64, error) {
	s, err := e.dev.Read()
	if err != nil {
		return 0, errcode.Wrap(errcode.SensorRead, "ahtx0 humidity", err)
	}
	return s.RelHumidity(), nil
}
