// Package ahtx0 drives the AHT20/AHT25 temperature and humidity sensors.
// Measurements are two-phase:
//
//	d.Trigger()            // start a conversion
//	err := d.Collect(&s)   // ErrNotReady while the sensor is busy
//
// Read does both with bounded polling.
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided.
package ahtx0

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

const Address = 0x38

const (
	cmdTrigger    = 0xAC
	cmdInitialize = 0xBE
	cmdSoftReset  = 0xBA
	cmdStatus     = 0x71

	statusBusy       = 0x80
	statusCalibrated = 0x08

	fullScale = 1 << 20
)

var (
	ErrTimeout       = errors.New("ahtx0: timeout")
	ErrNotReady      = errors.New("ahtx0: not ready")
	ErrNotCalibrated = errors.New("ahtx0: not calibrated")
	ErrChecksum      = errors.New("ahtx0: checksum mismatch")
)

// Config is optional; zero fields take defaults.
type Config struct {
	Address uint16 // 0x38 if zero
	// PollInterval is the wait between Collect attempts in Read. Default 15 ms.
	PollInterval time.Duration
	// CollectTimeout bounds the total wait in Read. Default 250 ms.
	CollectTimeout time.Duration
	// TriggerHint is the nominal conversion time. Read waits this long
	// before the first Collect. Default 80 ms.
	TriggerHint time.Duration
	// VerifyCRC checks the trailing CRC-8 byte of each measurement.
	VerifyCRC bool
}

func (c Config) withDefaults() Config {
	if c.Address == 0 {
		c.Address = Address
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 15 * time.Millisecond
	}
	if c.CollectTimeout <= 0 {
		c.CollectTimeout = 250 * time.Millisecond
	}
	if c.TriggerHint <= 0 {
		c.TriggerHint = 80 * time.Millisecond
	}
	return c
}

type Device struct {
	bus     drivers.I2C
	Address uint16

	cfg Config
	buf [7]byte
}

// New only creates the Device; it does not touch the bus.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address, cfg: Config{}.withDefaults()}
}

// Configure applies cfg and calibrates the sensor if it reports
// uncalibrated. The sensor is soft-reset first when calibration is needed.
func (d *Device) Configure(cfg Config) error {
	d.cfg = cfg.withDefaults()
	d.Address = d.cfg.Address

	st, err := d.Status()
	if err != nil {
		return err
	}
	if st&statusCalibrated != 0 {
		return nil
	}
	if err := d.Reset(); err != nil {
		return err
	}
	time.Sleep(20 * time.Millisecond)
	if err := d.bus.Tx(d.Address, []byte{cmdInitialize, 0x08, 0x00}, nil); err != nil {
		return err
	}
	deadline := time.Now().Add(d.cfg.CollectTimeout)
	for {
		st, err = d.Status()
		if err != nil {
			return err
		}
		if st&statusBusy == 0 {
			break
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(d.cfg.PollInterval)
	}
	if st&statusCalibrated == 0 {
		return ErrNotCalibrated
	}
	return nil
}

// Reset issues a soft reset. The sensor needs about 20 ms afterwards.
func (d *Device) Reset() error {
	return d.bus.Tx(d.Address, []byte{cmdSoftReset}, nil)
}

func (d *Device) Status() (byte, error) {
	var b [1]byte
	if err := d.bus.Tx(d.Address, []byte{cmdStatus}, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Trigger starts a conversion without waiting for it.
func (d *Device) Trigger() error {
	return d.bus.Tx(d.Address, []byte{cmdTrigger, 0x33, 0x00}, nil)
}

func (d *Device) TriggerHint() time.Duration { return d.cfg.TriggerHint }

// Collect reads one finished measurement into out. Bus errors are
// returned as-is.
func (d *Device) Collect(out *Sample) error {
	data := d.buf[:]
	if err := d.bus.Tx(d.Address, nil, data); err != nil {
		return err
	}
	if data[0]&statusCalibrated == 0 || data[0]&statusBusy != 0 {
		return ErrNotReady
	}
	if d.cfg.VerifyCRC && CRC8(data[:6]) != data[6] {
		return ErrChecksum
	}
	out.RawHumidity = uint32(data[1])<<12 | uint32(data[2])<<4 | uint32(data[3])>>4
	out.RawTemp = uint32(data[3]&0x0F)<<16 | uint32(data[4])<<8 | uint32(data[5])
	return nil
}

// Read performs Trigger followed by polling until Collect succeeds or
// CollectTimeout elapses.
func (d *Device) Read() (Sample, error) {
	var s Sample
	if err := d.Trigger(); err != nil {
		return s, err
	}
	time.Sleep(d.cfg.TriggerHint)
	deadline := time.Now().Add(d.cfg.CollectTimeout)
	for {
		err := d.Collect(&s)
		if !errors.Is(err, ErrNotReady) {
			return s, err
		}
		if time.Now().After(deadline) {
			return s, ErrTimeout
		}
		time.Sleep(d.cfg.PollInterval)
	}
}

// Sample holds the 20-bit raw readings.
type Sample struct {
	RawHumidity uint32
	RawTemp     uint32
}

func (s Sample) Celsius() float64 {
	return float64(s.RawTemp)*200/fullScale - 50
}

func (s Sample) RelHumidity() float64 {
	return float64(s.RawHumidity) * 100 / fullScale
}

// CRC8 is the sensor's checksum: polynomial 0x31, initial value 0xFF.
func CRC8(data []byte) byte {
	crc := byte(0xFF)
	for _, b := range data {
		crc ^= b
		for range 8 {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x31
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
