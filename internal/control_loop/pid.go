package control_loop

import (
	"math"

	"github.com/markusressel/steer2go/internal/util"
)

// PidState is a copy of the internal state of a PidControlLoop
type PidState struct {
	PreviousError float64 `json:"previousError"`
	Integral      float64 `json:"integral"`
	NeedsReset    bool    `json:"needsReset"`
}

// PidControlLoop is a PID controller producing a steering correction from an angle error.
// The integral term is bounded to (-integralLimit, integralLimit) and cleared whenever
// the error crosses the setpoint.
type PidControlLoop struct {
	// Proportional Constant
	p float64
	// Integral Constant
	i float64
	// Derivative Constant
	d float64
	// the integral never leaves (-integralLimit, integralLimit)
	integralLimit float64

	previousError float64
	integral      float64
	needsReset    bool
}

// NewPidControlLoop creates a PidControlLoop. The first call to Update uses its error as the baseline.
func NewPidControlLoop(
	p float64,
	i float64,
	d float64,
	integralLimit float64,
) *PidControlLoop {
	return &PidControlLoop{
		p:             p,
		i:             i,
		d:             d,
		integralLimit: math.Abs(integralLimit),
		needsReset:    true,
	}
}

// Reset flags the loop to use the error of the next Update call as its new baseline
func (l *PidControlLoop) Reset() {
	l.needsReset = true
}

// Update advances the pid loop with the given error
func (l *PidControlLoop) Update(err float64) float64 {
	if l.needsReset {
		l.previousError = err
		l.integral = 0
		l.needsReset = false
	}

	// setpoint crossed, +0 and -0 are treated as different signs
	if util.SignBitDiffers(err, l.previousError) {
		l.integral = 0
	}

	derivative := err - l.previousError

	next := l.integral + err
	if math.Abs(next) < l.integralLimit || math.Abs(next) < math.Abs(l.integral) {
		l.integral = next
	}

	l.previousError = err

	return l.p*err + l.i*l.integral + l.d*derivative
}

// State returns a copy of the current internal state
func (l *PidControlLoop) State() PidState {
	return PidState{
		PreviousError: l.previousError,
		Integral:      l.integral,
		NeedsReset:    l.needsReset,
	}
}
