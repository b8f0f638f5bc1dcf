package hal

import (
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ina219"

	"battmon/errcode"
)

// 0.1 mA per current register count.
const ina219CurrentLSB = 0.0001

// INA219Calibration returns the calibration register value for a shunt
// with the fixed 0.1 mA current LSB.
func INA219Calibration(shuntOhms float64) (ina219.Calibration, error) {
	if !(shuntOhms > 0) {
		return 0, errcode.New(errcode.Configuration, "ina219", "shunt must be positive")
	}
	cal := uint64(0.04096 / (ina219CurrentLSB * shuntOhms))
	if cal == 0 || cal > 0xFFFE {
		return 0, errcode.New(errcode.Configuration, "ina219",
			fmt.Sprintf("shunt %g ohm gives calibration %d outside the register", shuntOhms, cal))
	}
	return ina219.Calibration(cal), nil
}

// PowerSource reads battery voltage and current from an INA219.
type PowerSource struct {
	dev ina219.Device
}

// NewPowerSource configures the INA219 at addr for a 32 V bus and a
// +-320 mV shunt range in continuous mode.
func NewPowerSource(bus drivers.I2C, addr uint16, shuntOhms float64) (*PowerSource, error) {
	cal, err := INA219Calibration(shuntOhms)
	if err != nil {
		return nil, err
	}
	dev := ina219.New(bus)
	dev.Address = addr
	dev.SetConfig(ina219.Config{
		BusVoltageRange: ina219.Range32V,
		PGA:             ina219.PGA8,
		BusADC:          ina219.ADC12,
		ShuntADC:        ina219.SADC12,
		Mode:            ina219.ModeContShuntBus,
		Calibration:     cal,
		CurrentDivider:  float32(1e-3 / ina219CurrentLSB),
		PowerMultiplier: float32(20 * ina219CurrentLSB * 1e3),
	})
	if err := dev.Configure(); err != nil {
		return nil, errcode.Wrap(errcode.SensorRead, "ina219 configure", err)
	}
	return &PowerSource{dev: dev}, nil
}

// ReadBusVoltage returns volts.
func (p *PowerSource) ReadBusVoltage() (float64, error) {
	mv, err := p.dev.BusVoltage()
	if err != nil {
		return 0, errcode.Wrap(errcode.SensorRead, "ina219 bus voltage", err)
	}
	return float64(mv) / 1000, nil
}

// ReadCurrent returns milliamps; negative while charging.
func (p *PowerSource) ReadCurrent() (float64, error) {
	ma, err := p.dev.Current()
	if err != nil {
		return 0, errcode.Wrap(errcode.SensorRead, "ina219 current", err)
	}
	return float64(ma), nil
}
