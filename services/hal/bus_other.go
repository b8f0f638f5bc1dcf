//go:build !linux

package hal

import "battmon/errcode"

func OpenI2C(name string) (I2CBus, error) {
	return nil, errcode.New(errcode.Unsupported, "open i2c bus "+name, "only linux hosts are supported")
}
