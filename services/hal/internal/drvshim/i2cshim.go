package drvshim

import "tinygo.org/x/drivers"

// I2C passes Tx through to a bus and remembers the first error. Some
// tinygo drivers discard Tx errors; Take recovers them after the call.
type I2C struct {
	bus drivers.I2C
	err error
}

func NewI2C(bus drivers.I2C) *I2C {
	return &I2C{bus: bus}
}

func (s *I2C) Tx(addr uint16, w, r []byte) error {
	err := s.bus.Tx(addr, w, r)
	if err != nil && s.err == nil {
		s.err = err
	}
	return err
}

// Take returns the latched error, if any, and clears it.
func (s *I2C) Take() error {
	err := s.err
	s.err = nil
	return err
}
