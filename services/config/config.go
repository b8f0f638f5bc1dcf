// Package config resolves the startup configuration: an embedded board
// profile, overlaid by optional dotenv files, overlaid by the process
// environment. It is read once; there is no reload.
package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"battmon/errcode"
	"battmon/types"
	"battmon/x/strx"
)

const (
	keyPrefix  = "BATTMON_"
	ProfileEnv = keyPrefix + "PROFILE"

	keyShuntOhms       = keyPrefix + "SHUNT_OHMS"
	keyVoltageHealthy  = keyPrefix + "VOLTAGE_HEALTHY"
	keyVoltageModerate = keyPrefix + "VOLTAGE_MODERATE"
	keyMaxVoltage      = keyPrefix + "MAX_VOLTAGE"
	keyMinVoltage      = keyPrefix + "MIN_VOLTAGE"
	keyPageDelay       = keyPrefix + "PAGE_DELAY"
	keyLCDCols         = keyPrefix + "LCD_COLS"
	keyLCDRows         = keyPrefix + "LCD_ROWS"
	keyLCDAddr         = keyPrefix + "LCD_ADDR"
	keyINA219Addr      = keyPrefix + "INA219_ADDR"
	keyAHTAddr         = keyPrefix + "AHT_ADDR"
	keyI2CBus          = keyPrefix + "I2C_BUS"
)

var keys = []string{
	keyShuntOhms, keyVoltageHealthy, keyVoltageModerate, keyMaxVoltage,
	keyMinVoltage, keyPageDelay, keyLCDCols, keyLCDRows, keyLCDAddr,
	keyINA219Addr, keyAHTAddr, keyI2CBus,
}

// ProfileLookup allows overriding how profiles are resolved.
var ProfileLookup = func(name string) (string, bool) {
	s, ok := embeddedProfiles[name]
	return s, ok
}

// Profiles lists the embedded profile names.
func Profiles() []string {
	return slices.Sorted(maps.Keys(embeddedProfiles))
}

type Config struct {
	Profile     string
	Calibration types.Calibration
	Geometry    types.Geometry

	LCDAddr    uint16
	INA219Addr uint16
	AHTAddr    uint16
	I2CBus     string // periph bus name; "" is the first bus found
}

// Load resolves profile (or $BATTMON_PROFILE, or DefaultProfile), then
// applies files in order, then the environment. Missing files are skipped.
func Load(profile string, files ...string) (Config, error) {
	profile = strx.Coalesce(profile, strx.Coalesce(os.Getenv(ProfileEnv), DefaultProfile))

	raw, ok := ProfileLookup(profile)
	if !ok {
		return Config{}, errcode.New(errcode.Configuration, "config", "unknown profile "+strconv.Quote(profile))
	}
	vals, err := godotenv.Unmarshal(raw)
	if err != nil {
		return Config{}, errcode.Wrap(errcode.Configuration, "profile "+profile, err)
	}

	for _, f := range files {
		m, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, errcode.Wrap(errcode.Configuration, "read "+f, err)
		}
		maps.Copy(vals, m)
	}

	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			vals[k] = v
		}
	}

	c, err := parse(vals)
	if err != nil {
		return Config{}, err
	}
	c.Profile = profile
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the resolved values before anything touches hardware.
func (c Config) Validate() error {
	if err := c.Calibration.Validate(); err != nil {
		return err
	}
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	for _, a := range []struct {
		key  string
		addr uint16
	}{{keyLCDAddr, c.LCDAddr}, {keyINA219Addr, c.INA219Addr}, {keyAHTAddr, c.AHTAddr}} {
		if a.addr == 0 || a.addr > 0x7F {
			return errcode.New(errcode.Configuration, a.key, "not a 7-bit i2c address")
		}
	}
	return nil
}

// ---- parsing ----

// parser records the first failure so parse reads as a flat list.
type parser struct {
	vals map[string]string
	err  error
}

func (p *parser) get(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.vals[key]
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		p.err = errcode.New(errcode.Configuration, key, "missing")
		return "", false
	}
	return v, true
}

func (p *parser) fail(key, v string, err error) {
	p.err = errcode.Wrap(errcode.Configuration, key+"="+strconv.Quote(v), err)
}

func (p *parser) float(key string) float64 {
	v, ok := p.get(key)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
	}
	return f
}

func (p *parser) integer(key string) int {
	v, ok := p.get(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
	}
	return n
}

// addr accepts decimal or 0x-prefixed hex.
func (p *parser) addr(key string) uint16 {
	v, ok := p.get(key)
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(v, 0, 16)
	if err != nil {
		p.fail(key, v, err)
	}
	return uint16(n)
}

// duration accepts a Go duration ("5s", "1500ms") or plain seconds ("5", "2.5").
func (p *parser) duration(key string) time.Duration {
	v, ok := p.get(key)
	if !ok {
		return 0
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

func parse(vals map[string]string) (Config, error) {
	p := &parser{vals: vals}
	c := Config{
		Calibration: types.Calibration{
			ShuntOhms:       p.float(keyShuntOhms),
			VoltageHealthy:  p.float(keyVoltageHealthy),
			VoltageModerate: p.float(keyVoltageModerate),
			MaxVoltage:      p.float(keyMaxVoltage),
			MinVoltage:      p.float(keyMinVoltage),
			PageDelay:       p.duration(keyPageDelay),
		},
		Geometry: types.Geometry{
			Cols: p.integer(keyLCDCols),
			Rows: p.integer(keyLCDRows),
		},
		LCDAddr:    p.addr(keyLCDAddr),
		INA219Addr: p.addr(keyINA219Addr),
		AHTAddr:    p.addr(keyAHTAddr),
		I2CBus:     strings.TrimSpace(vals[keyI2CBus]),
	}
	return c, p.err
}
