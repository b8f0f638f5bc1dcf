package hal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ina219"

	"battmon/errcode"
	"battmon/services/config"
	"battmon/types"
)

func refConfig() config.Config {
	return config.Config{
		Calibration: types.ReferenceCalibration,
		Geometry:    types.ReferenceGeometry,
		LCDAddr:     0x27,
		INA219Addr:  0x40,
		AHTAddr:     0x38,
	}
}

func TestAttach_AllDevices(t *testing.T) {
	ina, _ := newINA219Fake(t)
	lcd := &fakeLCD{}
	bus := &router{devs: map[uint16]drivers.I2C{
		0x27:           lcd,
		ina219.Address: ina,
		0x38:           &fakeAHT{hraw: 576_717, traw: 393_216},
	}}

	d, err := Attach(bus, refConfig())
	require.NoError(t, err)

	v, err := d.Power.ReadBusVoltage()
	require.NoError(t, err)
	assert.InDelta(t, 12.0, v, 1e-9)
	c, err := d.Env.ReadTemperature()
	require.NoError(t, err)
	assert.InDelta(t, 25.0, c, 1e-9)
	require.NoError(t, d.Display.WriteLines("Battery:Healthy", "T:25.0 H:55%"))
	assert.Equal(t, "T:25.0 H:55%", lcd.Row(1, 16))

	require.NoError(t, d.Close())
	assert.True(t, bus.closed)
}

func TestAttach_MissingDeviceClosesBus(t *testing.T) {
	bus := &router{devs: map[uint16]drivers.I2C{0x27: &fakeLCD{}}}
	_, err := Attach(bus, refConfig())
	assert.True(t, errors.Is(err, errcode.SensorRead), "got %v", err)
	assert.True(t, errors.Is(err, errNack))
	assert.True(t, bus.closed)
}
