// Package pages renders one rotating display page as two fixed-width lines.
package pages

import (
	"fmt"

	"battmon/errcode"
	"battmon/types"
	"battmon/x/strx"
)

const (
	statusPrefix = "Battery:"
	svmOff       = "SVM:OFF" // state of vehicle motion, not implemented
)

// StatusFieldWidth is the padded width of the status text after
// "Battery:". The last column is left free; on a 16-column display
// this gives 7.
func StatusFieldWidth(cols int) int {
	return max(0, cols-len(statusPrefix)-1)
}

// Format renders page for the given metrics and sample. Both lines are
// fitted to cols. A page outside [0, types.PageCount) is a caller bug.
func Format(page int, m types.DerivedMetrics, s types.RawSample, cols int) (string, string, error) {
	var l1, l2 string
	switch page {
	case 0:
		l1 = statusLine(m.Status, cols)
		l2 = fmt.Sprintf("V:%.2f I:%.0fmA", s.BusVoltage, s.CurrentMilliamps)
	case 1:
		l1 = statusLine(m.Status, cols)
		l2 = fmt.Sprintf("T:%.1f H:%.0f%%", s.TemperatureCelsius, s.RelativeHumidityPercent)
	case 2:
		l1 = svmOff
		l2 = fmt.Sprintf("SOC:%d%% SOH:OFF", int(m.SOCPercent))
	case 3:
		l1 = svmOff
		l2 = fmt.Sprintf("DOD:%d%% Z:%.1fR", int(m.DODPercent), m.ImpedanceOhms)
	default:
		return "", "", errcode.New(errcode.Internal, "format page", fmt.Sprintf("page %d out of range", page))
	}
	return strx.Fit(l1, cols), strx.Fit(l2, cols), nil
}

func statusLine(st types.HealthStatus, cols int) string {
	return statusPrefix + strx.PadRight(st.String(), StatusFieldWidth(cols))
}
