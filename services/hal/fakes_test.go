package hal

import (
	"errors"
	"strings"
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"

	"battmon/drivers/ahtx0"
)

var errNack = errors.New("nack")

// ---- HD44780 behind a PCF8574 ----

// fakeLCD decodes the PCF8574 nibble stream back into HD44780
// instructions and keeps a DDRAM image.
type fakeLCD struct {
	mu      sync.Mutex
	err     error
	lastEn  bool
	fourBit bool
	pending bool
	hi      byte
	ac      byte
	ddram   [0x80]byte
}

var _ drivers.I2C = (*fakeLCD)(nil)

func (f *fakeLCD) Tx(addr uint16, w, r []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if len(w) != 1 || len(r) != 0 {
		return errors.New("pcf8574: single byte writes only")
	}
	v := w[0]
	en := v&hd44780i2c.En != 0
	if f.lastEn && !en {
		f.latch(v&0xF0, v&hd44780i2c.Rs != 0)
	}
	f.lastEn = en
	return nil
}

func (f *fakeLCD) latch(nib byte, rs bool) {
	if !f.fourBit {
		if nib == 0x20 {
			f.fourBit = true
		}
		return
	}
	if !f.pending {
		f.hi, f.pending = nib, true
		return
	}
	f.pending = false
	b := f.hi | nib>>4
	switch {
	case rs:
		f.ddram[f.ac&0x7F] = b
		f.ac++
	case b == hd44780i2c.DISPLAY_CLEAR:
		for i := range f.ddram {
			f.ddram[i] = ' '
		}
		f.ac = 0
	case b == hd44780i2c.CURSOR_HOME:
		f.ac = 0
	case b&hd44780i2c.DDRAM_SET != 0:
		f.ac = b & 0x7F
	}
}

// Row returns the visible text of row y without trailing spaces.
func (f *fakeLCD) Row(y, cols int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := []int{0x00, 0x40, 0x14, 0x54}[y]
	return strings.TrimRight(string(f.ddram[off:off+cols]), " ")
}

// ---- AHTx0, always ready ----

type fakeAHT struct {
	err        error
	hraw, traw uint32
	inits      int
}

func (f *fakeAHT) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	switch {
	case len(w) == 1 && len(r) == 1: // status
		r[0] = 0x08
	case len(w) == 3 && w[0] == 0xBE:
		f.inits++
	case len(w) == 0 && len(r) == 7:
		r[0] = 0x08
		r[1] = byte(f.hraw >> 12)
		r[2] = byte(f.hraw >> 4)
		r[3] = byte((f.hraw&0xF)<<4 | (f.traw>>16)&0x0F)
		r[4] = byte(f.traw >> 8)
		r[5] = byte(f.traw)
		r[6] = ahtx0.CRC8(r[:6])
	}
	return nil
}

// ---- address router ----

type router struct {
	devs   map[uint16]drivers.I2C
	closed bool
}

func (b *router) Tx(addr uint16, w, r []byte) error {
	d, ok := b.devs[addr]
	if !ok {
		return errNack
	}
	return d.Tx(addr, w, r)
}

func (b *router) Close() error {
	b.closed = true
	return nil
}
