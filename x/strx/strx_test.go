package strx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "a", Coalesce("a", "b"))
	assert.Equal(t, "b", Coalesce("", "b"))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "Healthy", PadRight("Healthy", 7))
	assert.Equal(t, "Ok     ", PadRight("Ok", 7))
	assert.Equal(t, "Moderate", PadRight("Moderate", 7))
	assert.Equal(t, "x", PadRight("x", -2))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "V:12.00 I:-1500m", Fit("V:12.00 I:-1500mA", 16))
	assert.Equal(t, "SVM:OFF", Fit("SVM:OFF", 16))
	assert.Equal(t, "", Fit("abc", 0))
}
