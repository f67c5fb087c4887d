package control_loop

import (
	"math"

	"github.com/markusressel/steer2go/internal/util"
)

// DirectControlLoop is a very simple control that directly applies the given
// target value. It can also be used to gracefully approach the target by
// utilizing the "maxChangePerCycle" property, and to bound the result by
// utilizing the "limit" property.
type DirectControlLoop struct {
	// limits the maximum allowed change per cycle
	maxChangePerCycle *float64
	// limits the absolute value of the result
	limit *float64

	current float64
}

// NewDirectControlLoop creates a DirectControlLoop, which is a very simple control that directly applies the given
// target value, optionally rate-limited by maxChangePerCycle and bounded to [-limit, limit].
func NewDirectControlLoop(
	// can be used to limit the maximum allowed change per cycle
	maxChangePerCycle *float64,
	// can be used to bound the result to [-limit, limit]
	limit *float64,
) *DirectControlLoop {
	return &DirectControlLoop{
		maxChangePerCycle: maxChangePerCycle,
		limit:             limit,
	}
}

func (l *DirectControlLoop) Cycle(target float64) float64 {
	if math.IsNaN(target) {
		return l.current
	}

	delta := target - l.current
	if l.maxChangePerCycle != nil {
		maxChange := math.Abs(*l.maxChangePerCycle)
		delta = util.Coerce(delta, -maxChange, maxChange)
	}

	result := l.current + delta
	if l.limit != nil {
		limit := math.Abs(*l.limit)
		result = util.Coerce(result, -limit, limit)
	}

	l.current = result
	return result
}

// Current returns the last committed value
func (l *DirectControlLoop) Current() float64 {
	return l.current
}
