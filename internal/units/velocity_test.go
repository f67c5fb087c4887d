package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected float64
	}{
		{"mps", MPS, 10},
		{"mph", MPH, 22.37},
		{"kph", KPH, 36},
		{"unknown falls back to mps", "furlongs", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ConvertSpeed(10, tt.unit), 1e-9)
		})
	}
}

func TestKphToMps(t *testing.T) {
	assert.InDelta(t, 13.8889, KphToMps(50), 1e-4)
	assert.Equal(t, 0.0, KphToMps(0))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(MPH))
	assert.False(t, IsValid("kmph"))
}
