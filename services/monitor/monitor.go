// Package monitor runs the sample -> derive -> format -> display cycle
// and contains every failure at the loop boundary.
package monitor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"battmon/errcode"
	"battmon/services/monitor/metrics"
	"battmon/services/monitor/pages"
	"battmon/types"
)

// ---- Collaborators ----

// PowerSensor reads the battery bus. Current is in milliamps.
type PowerSensor interface {
	ReadBusVoltage() (float64, error)
	ReadCurrent() (float64, error)
}

type EnvSensor interface {
	ReadTemperature() (float64, error)
	ReadRelativeHumidity() (float64, error)
}

// Display is a character display with at least two rows.
type Display interface {
	Clear() error
	WriteLines(line1, line2 string) error
}

// ---- Outcome ----

type Status uint8

const (
	Cancelled Status = iota + 1
	Failed
)

func (s Status) String() string {
	switch s {
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is how Run ended. Err is set only for Failed.
type Outcome struct {
	Status Status
	Err    error
	Cycles int
}

// Final display messages.
const (
	StoppedMessage = "System Stopped"
	ErrorMessage   = "Error Occurred"
)

// ---- Monitor ----

type Config struct {
	Power       PowerSensor
	Env         EnvSensor
	Display     Display
	Calibration types.Calibration
	Geometry    types.Geometry
	Logger      *log.Logger // nil uses the standard logger
}

type Monitor struct {
	power   PowerSensor
	env     EnvSensor
	display Display
	cal     types.Calibration
	geom    types.Geometry
	log     *log.Logger
}

func New(cfg Config) (*Monitor, error) {
	if cfg.Power == nil || cfg.Env == nil || cfg.Display == nil {
		return nil, errcode.New(errcode.Configuration, "monitor", "power, env and display are required")
	}
	if err := cfg.Calibration.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	lg := cfg.Logger
	if lg == nil {
		lg = log.Default()
	}
	return &Monitor{
		power:   cfg.Power,
		env:     cfg.Env,
		display: cfg.Display,
		cal:     cfg.Calibration,
		geom:    cfg.Geometry,
		log:     lg,
	}, nil
}

// Run cycles until ctx is cancelled or a cycle fails. It never panics.
func (m *Monitor) Run(ctx context.Context) Outcome {
	m.log.Println("Battery monitoring system started...")

	timer := time.NewTimer(m.cal.PageDelay)
	stopTimer(timer)
	defer timer.Stop()

	page := 0
	cycles := 0
	for {
		if ctx.Err() != nil {
			return m.stopped(cycles)
		}
		if err := m.cycle(page); err != nil {
			return m.failed(err, cycles)
		}
		cycles++
		page = (page + 1) % types.PageCount

		timer.Reset(m.cal.PageDelay)
		select {
		case <-ctx.Done():
			stopTimer(timer)
			return m.stopped(cycles)
		case <-timer.C:
		}
	}
}

// cycle does one sample/derive/format/write pass. A panic in any
// collaborator comes back as an internal error.
func (m *Monitor) cycle(page int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errcode.New(errcode.Internal, "cycle", fmt.Sprint("panic: ", r))
		}
	}()

	s, err := m.sample()
	if err != nil {
		return err
	}
	dm := metrics.Derive(s, m.cal)
	l1, l2, err := pages.Format(page, dm, s, m.geom.Cols)
	if err != nil {
		return err
	}
	if err := m.display.Clear(); err != nil {
		return errcode.Wrap(errcode.DisplayWrite, "clear", err)
	}
	return errcode.Wrap(errcode.DisplayWrite, "write lines", m.display.WriteLines(l1, l2))
}

func (m *Monitor) sample() (types.RawSample, error) {
	var s types.RawSample
	var err error
	if s.BusVoltage, err = m.power.ReadBusVoltage(); err != nil {
		return s, asSensorErr("bus voltage", err)
	}
	if s.CurrentMilliamps, err = m.power.ReadCurrent(); err != nil {
		return s, asSensorErr("current", err)
	}
	if s.TemperatureCelsius, err = m.env.ReadTemperature(); err != nil {
		return s, asSensorErr("temperature", err)
	}
	if s.RelativeHumidityPercent, err = m.env.ReadRelativeHumidity(); err != nil {
		return s, asSensorErr("humidity", err)
	}
	return s, nil
}

// asSensorErr keeps a code the adapter already attached.
func asSensorErr(op string, err error) error {
	if errcode.Of(err) != errcode.Error {
		return err
	}
	return errcode.Wrap(errcode.SensorRead, op, err)
}

func (m *Monitor) stopped(cycles int) Outcome {
	m.finalMessage(StoppedMessage)
	m.log.Println("Battery monitoring stopped by user")
	return Outcome{Status: Cancelled, Cycles: cycles}
}

func (m *Monitor) failed(err error, cycles int) Outcome {
	m.log.Printf("Error: %s: %v", errcode.Of(err), detail(err))
	m.finalMessage(ErrorMessage)
	return Outcome{Status: Failed, Err: err, Cycles: cycles}
}

// finalMessage is best effort; the display may be what failed.
func (m *Monitor) finalMessage(msg string) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Printf("display: final message: panic: %v", r)
		}
	}()
	if err := m.display.Clear(); err != nil {
		m.log.Printf("display: final message: %v", err)
	}
	if err := m.display.WriteLines(msg, ""); err != nil {
		m.log.Printf("display: final message: %v", err)
	}
}

// detail drops the leading code from an *errcode.E message so the log
// line does not repeat it.
func detail(err error) string {
	s := err.Error()
	if rest, ok := strings.CutPrefix(s, string(errcode.Of(err))+": "); ok {
		return rest
	}
	return s
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
