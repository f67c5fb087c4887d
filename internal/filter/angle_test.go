package filter

import (
	"testing"

	"github.com/markusressel/steer2go/internal/util"
	"github.com/stretchr/testify/assert"
)

func TestAngleFilter_FirstCallIsAbsent(t *testing.T) {
	// GIVEN
	f := NewAngleFilter(3)

	// WHEN
	result := f.Update(util.None[float64]())

	// THEN
	assert.False(t, result.Present)
	assert.ElementsMatch(t, []float64{0, 0, 0}, f.Values())
}

func TestAngleFilter_FirstCallWithReadingIsAbsent(t *testing.T) {
	// GIVEN
	f := NewAngleFilter(3)

	// WHEN
	result := f.Update(util.Some(0.3))

	// THEN
	assert.False(t, result.Present)
	assert.ElementsMatch(t, []float64{0, 0, 0}, f.Values())
}

func TestAngleFilter_AverageOverZeroFilledWindow(t *testing.T) {
	// GIVEN
	f := NewAngleFilter(3)
	f.Update(util.None[float64]())

	// WHEN
	result := f.Update(util.Some(0.3))

	// THEN
	assert.True(t, result.Present)
	assert.InDelta(t, 0.1, result.Value, 1e-12)
	assert.ElementsMatch(t, []float64{0, 0, 0.3}, f.Values())
}

func TestAngleFilter_SlidingWindow(t *testing.T) {
	// GIVEN
	f := NewAngleFilter(3)
	f.Update(util.None[float64]())
	f.Update(util.Some(0.3))
	f.Update(util.Some(0.3))
	f.Update(util.Some(0.3))

	// WHEN
	result := f.Update(util.Some(0.6))

	// THEN
	assert.InDelta(t, 0.4, result.Value, 1e-12)
	assert.ElementsMatch(t, []float64{0.3, 0.3, 0.6}, f.Values())
}

func TestAngleFilter_AbsentReadingDiscardsHistory(t *testing.T) {
	// GIVEN
	f := NewAngleFilter(3)
	f.Update(util.None[float64]())
	f.Update(util.Some(0.3))
	f.Update(util.Some(0.3))

	// WHEN
	result := f.Update(util.None[float64]())

	// THEN
	assert.False(t, result.Present)
	assert.ElementsMatch(t, []float64{0, 0, 0}, f.Values())

	// WHEN
	result = f.Update(util.Some(-0.3))

	// THEN
	assert.InDelta(t, -0.1, result.Value, 1e-12)
}
