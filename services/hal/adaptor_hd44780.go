package hal

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"

	"battmon/errcode"
	"battmon/services/hal/internal/drvshim"
	"battmon/types"
	"battmon/x/strx"
)

// Display is an HD44780 behind a PCF8574 backpack. Bus errors the driver
// drops are caught by the shim and reported per call.
type Display struct {
	bus  *drvshim.I2C
	dev  hd44780i2c.Device
	cols int
}

func NewDisplay(bus drivers.I2C, addr uint16, g types.Geometry) (*Display, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if g.Cols > 40 || g.Rows > 4 {
		return nil, errcode.New(errcode.Configuration, "hd44780", "geometry larger than 40x4")
	}
	shim := drvshim.NewI2C(bus)
	d := &Display{bus: shim, dev: hd44780i2c.New(shim, uint8(addr)), cols: g.Cols}
	if err := d.dev.Configure(hd44780i2c.Config{Width: uint8(g.Cols), Height: uint8(g.Rows)}); err != nil {
		return nil, errcode.Wrap(errcode.Configuration, "hd44780 configure", err)
	}
	if err := shim.Take(); err != nil {
		return nil, errcode.Wrap(errcode.DisplayWrite, "hd44780 configure", err)
	}
	return d, nil
}

func (d *Display) Clear() error {
	d.bus.Take()
	d.dev.ClearDisplay()
	return errcode.Wrap(errcode.DisplayWrite, "hd44780 clear", d.bus.Take())
}

// WriteLines writes rows 0 and 1, each fitted to the display width.
func (d *Display) WriteLines(line1, line2 string) error {
	d.bus.Take()
	d.dev.SetCursor(0, 0)
	d.dev.Print([]byte(strx.Fit(line1, d.cols)))
	d.dev.SetCursor(0, 1)
	d.dev.Print([]byte(strx.Fit(line2, d.cols)))
	return errcode.Wrap(errcode.DisplayWrite, "hd44780 write", d.bus.Take())
}

// Backlight switches the backpack's backlight.
func (d *Display) Backlight(on bool) error {
	d.bus.Take()
	d.dev.BacklightOn(on)
	return errcode.Wrap(errcode.DisplayWrite, "hd44780 backlight", d.bus.Take())
}
