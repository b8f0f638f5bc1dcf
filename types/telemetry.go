package types

import "time"

// ------------------------
// Battery telemetry
// ------------------------

// PageCount is the number of display pages the monitor rotates through.
const PageCount = 4

// RawSample is one cycle's worth of sensor readings. Current stays in
// milliamps as reported by the power sensor.
type RawSample struct {
	BusVoltage              float64 // V
	CurrentMilliamps        float64 // mA
	TemperatureCelsius      float64 // °C
	RelativeHumidityPercent float64 // %RH
}

// HealthStatus is the voltage band a reading falls into.
type HealthStatus uint8

const (
	Critical HealthStatus = iota
	Moderate
	Healthy
)

func (s HealthStatus) String() string {
	switch s {
	case Healthy:
		return "Healthy"
	case Moderate:
		return "Moderate"
	case Critical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// DerivedMetrics is computed from a RawSample and the calibration.
type DerivedMetrics struct {
	Status        HealthStatus
	SOCPercent    float64 // [0,100]
	DODPercent    float64 // 100 - SOCPercent
	ImpedanceOhms float64 // >= 0
}

// Calibration holds the process-wide constants fixed at startup.
type Calibration struct {
	ShuntOhms       float64
	VoltageHealthy  float64 // lower bound of the Healthy band (V)
	VoltageModerate float64 // lower bound of the Moderate band (V)
	MaxVoltage      float64 // fully charged (V)
	MinVoltage      float64 // fully discharged (V)
	PageDelay       time.Duration
}

// Geometry is the character display size.
type Geometry struct {
	Cols int
	Rows int
}

// ReferenceCalibration matches the 12 V lead-acid pack the monitor was
// first built for.
var ReferenceCalibration = Calibration{
	ShuntOhms:       0.1,
	VoltageHealthy:  11.5,
	VoltageModerate: 10.5,
	MaxVoltage:      12.6,
	MinVoltage:      9.0,
	PageDelay:       5 * time.Second,
}

// ReferenceGeometry is a 16x2 HD44780.
var ReferenceGeometry = Geometry{Cols: 16, Rows: 2}
