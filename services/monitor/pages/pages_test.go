package pages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battmon/errcode"
	"battmon/services/monitor/metrics"
	"battmon/types"
)

var refSample = types.RawSample{
	BusVoltage:              12.0,
	CurrentMilliamps:        500,
	TemperatureCelsius:      25.0,
	RelativeHumidityPercent: 40.0,
}

func TestFormat_ReferencePages(t *testing.T) {
	m := metrics.Derive(refSample, types.ReferenceCalibration)
	want := [types.PageCount][2]string{
		{"Battery:Healthy", "V:12.00 I:500mA"},
		{"Battery:Healthy", "T:25.0 H:40%"},
		{"SVM:OFF", "SOC:83% SOH:OFF"},
		{"SVM:OFF", "DOD:16% Z:24.0R"},
	}
	for p := 0; p < types.PageCount; p++ {
		l1, l2, err := Format(p, m, refSample, 16)
		require.NoError(t, err)
		assert.Equal(t, want[p][0], l1, "page %d line 1", p)
		assert.Equal(t, want[p][1], l2, "page %d line 2", p)
	}
}

func TestFormat_StatusPadding(t *testing.T) {
	m := types.DerivedMetrics{Status: types.Healthy}
	l1, _, err := Format(0, m, refSample, 20)
	require.NoError(t, err)
	assert.Equal(t, "Battery:Healthy    ", l1)
	assert.Len(t, l1, 8+StatusFieldWidth(20))

	m.Status = types.Moderate
	l1, _, err = Format(1, m, refSample, 16)
	require.NoError(t, err)
	assert.Equal(t, "Battery:Moderate", l1)

	m.Status = types.Critical
	l1, _, err = Format(0, m, refSample, 16)
	require.NoError(t, err)
	assert.Equal(t, "Battery:Critical", l1)
}

func TestStatusFieldWidth(t *testing.T) {
	assert.Equal(t, 7, StatusFieldWidth(16))
	assert.Equal(t, 11, StatusFieldWidth(20))
	assert.Equal(t, 0, StatusFieldWidth(4))
}

func TestFormat_LinesFitWidth(t *testing.T) {
	wide := types.RawSample{
		BusVoltage:              15.987,
		CurrentMilliamps:        -3276.8,
		TemperatureCelsius:      -40.25,
		RelativeHumidityPercent: 100,
	}
	m := types.DerivedMetrics{Status: types.Moderate, SOCPercent: 100, DODPercent: 0, ImpedanceOhms: 123456.78}
	for _, cols := range []int{8, 16, 20} {
		for p := 0; p < types.PageCount; p++ {
			l1, l2, err := Format(p, m, wide, cols)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(l1), cols, "cols=%d page=%d", cols, p)
			assert.LessOrEqual(t, len(l2), cols, "cols=%d page=%d", cols, p)
		}
	}
}

func TestFormat_IntegerTruncation(t *testing.T) {
	m := types.DerivedMetrics{SOCPercent: 99.99, DODPercent: 0.01, ImpedanceOhms: 0}
	_, l2, err := Format(2, m, refSample, 16)
	require.NoError(t, err)
	assert.Equal(t, "SOC:99% SOH:OFF", l2)
	_, l2, err = Format(3, m, refSample, 16)
	require.NoError(t, err)
	assert.Equal(t, "DOD:0% Z:0.0R", l2)
}

func TestFormat_CurrentShownInMilliamps(t *testing.T) {
	s := refSample
	s.CurrentMilliamps = 1234.4
	_, l2, err := Format(0, types.DerivedMetrics{}, s, 16)
	require.NoError(t, err)
	assert.Equal(t, "V:12.00 I:1234mA", l2)
}

func TestFormat_PageOutOfRange(t *testing.T) {
	for _, p := range []int{-1, types.PageCount, 99} {
		_, _, err := Format(p, types.DerivedMetrics{}, refSample, 16)
		assert.True(t, errors.Is(err, errcode.Internal), "page %d: %v", p, err)
	}
}
