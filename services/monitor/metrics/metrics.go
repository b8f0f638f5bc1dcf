// Package metrics derives battery health figures from one raw sample.
// Everything here is a pure function of its inputs.
package metrics

import (
	"battmon/types"
	"battmon/x/mathx"
)

// NoiseFloorAmps is the smallest current the INA219 resolves in practice.
// At or below it the impedance estimate is reported as zero.
const NoiseFloorAmps = 0.0001

// MilliampsToAmps converts the sensor's milliamp reading for amp-based maths.
func MilliampsToAmps(mA float64) float64 { return mA / 1000 }

// ClassifyHealth maps a bus voltage onto its band, highest band first.
// A voltage equal to a threshold belongs to the higher band.
func ClassifyHealth(busVoltage float64, cal types.Calibration) types.HealthStatus {
	switch {
	case busVoltage >= cal.VoltageHealthy:
		return types.Healthy
	case busVoltage >= cal.VoltageModerate:
		return types.Moderate
	default:
		return types.Critical
	}
}

// SOC linearly interpolates state of charge between minVoltage (0%) and
// maxVoltage (100%), clamped to [0,100]. maxVoltage > minVoltage is checked
// at startup.
func SOC(busVoltage, minVoltage, maxVoltage float64) float64 {
	return mathx.MapClamped(busVoltage, minVoltage, maxVoltage, 0, 100)
}

// DOD is the depth of discharge matching soc.
func DOD(soc float64) float64 { return 100 - soc }

// Impedance estimates the pack's apparent resistance as V/I.
func Impedance(busVoltage, currentAmps float64) float64 {
	if !(currentAmps > NoiseFloorAmps) {
		return 0
	}
	return max(0, busVoltage/currentAmps)
}

// Derive computes every metric for s.
func Derive(s types.RawSample, cal types.Calibration) types.DerivedMetrics {
	soc := SOC(s.BusVoltage, cal.MinVoltage, cal.MaxVoltage)
	return types.DerivedMetrics{
		Status:        ClassifyHealth(s.BusVoltage, cal),
		SOCPercent:    soc,
		DODPercent:    DOD(soc),
		ImpedanceOhms: Impedance(s.BusVoltage, MilliampsToAmps(s.CurrentMilliamps)),
	}
}
