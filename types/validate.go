package types

import (
	"math"

	"battmon/errcode"
)

// Validate rejects physically nonsensical calibration. The metrics engine
// relies on MaxVoltage > MinVoltage and on the bands being ordered.
func (c Calibration) Validate() error {
	const op = "calibration"
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"shunt_ohms", c.ShuntOhms},
		{"voltage_healthy", c.VoltageHealthy},
		{"voltage_moderate", c.VoltageModerate},
		{"max_voltage", c.MaxVoltage},
		{"min_voltage", c.MinVoltage},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errcode.New(errcode.Configuration, op, f.name+" must be finite")
		}
	}
	switch {
	case c.MaxVoltage <= c.MinVoltage:
		return errcode.New(errcode.Configuration, op, "max_voltage must exceed min_voltage")
	case c.VoltageHealthy < c.VoltageModerate:
		return errcode.New(errcode.Configuration, op, "voltage_healthy must not be below voltage_moderate")
	case c.ShuntOhms <= 0:
		return errcode.New(errcode.Configuration, op, "shunt_ohms must be positive")
	case c.PageDelay <= 0:
		return errcode.New(errcode.Configuration, op, "page_delay must be positive")
	}
	return nil
}

// Validate checks the display can hold the two text lines a page needs.
func (g Geometry) Validate() error {
	if g.Cols < 1 {
		return errcode.New(errcode.Configuration, "geometry", "cols must be at least 1")
	}
	if g.Rows < 2 {
		return errcode.New(errcode.Configuration, "geometry", "rows must be at least 2")
	}
	return nil
}
