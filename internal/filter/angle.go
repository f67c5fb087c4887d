package filter

import (
	"github.com/asecurityteam/rolling"
	"github.com/markusressel/steer2go/internal/util"
)

// AngleFilter smooths noisy lane angle readings using a moving average.
// A missing reading resets the window and is propagated as a missing value.
type AngleFilter struct {
	windowSize int
	window     *rolling.PointPolicy
	firstCall  bool
}

func NewAngleFilter(windowSize int) *AngleFilter {
	if windowSize < 1 {
		windowSize = 1
	}
	return &AngleFilter{
		windowSize: windowSize,
		window:     util.CreateRollingWindow(windowSize),
		firstCall:  true,
	}
}

// Update pushes the given reading into the window and returns the window average.
// The first call only primes the window with zeros and yields no value.
func (f *AngleFilter) Update(reading util.Optional[float64]) util.Optional[float64] {
	if f.firstCall || !reading.Present {
		f.firstCall = false
		f.Reset()
		return util.None[float64]()
	}

	f.window.Append(reading.Value)
	return util.Some(util.GetWindowAvg(f.window))
}

// Reset fills the window with zeros
func (f *AngleFilter) Reset() {
	util.FillWindow(f.window, f.windowSize, 0)
}

// Values returns the current content of the window in storage order
func (f *AngleFilter) Values() []float64 {
	var result []float64
	_ = f.window.Reduce(func(w rolling.Window) float64 {
		for _, bucket := range w {
			result = append(result, bucket...)
		}
		return 0
	})
	return result
}
