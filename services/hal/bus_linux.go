//go:build linux

package hal

import (
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"

	"battmon/errcode"
)

// OpenI2C loads the periph host drivers and opens the named bus, for
// example "1" for /dev/i2c-1. An empty name opens the first bus found.
func OpenI2C(name string) (I2CBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, errcode.Wrap(errcode.Unsupported, "periph host init", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, errcode.Wrap(errcode.Configuration, "open i2c bus "+name, err)
	}
	return b, nil
}
