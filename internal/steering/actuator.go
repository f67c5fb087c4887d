package steering

import (
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/control_loop"
	"github.com/markusressel/steer2go/internal/ui"
)

// SteeringBackend executes steering commands
type SteeringBackend interface {
	SetSteeringAngle(angle float64) error
}

// Actuator rate limits and bounds the commanded steering angle
// before it is handed to the backend.
type Actuator struct {
	loop    *control_loop.DirectControlLoop
	backend SteeringBackend
}

func NewActuator(config configuration.SteeringConfig, backend SteeringBackend) *Actuator {
	maxStep := config.MaxStepPerTick
	maxAngle := config.MaxAngle
	return &Actuator{
		loop:    control_loop.NewDirectControlLoop(&maxStep, &maxAngle),
		backend: backend,
	}
}

// Apply moves the steering angle towards target and returns the angle actually committed
func (a *Actuator) Apply(target float64) float64 {
	committed := a.loop.Cycle(target)
	if a.backend != nil {
		if err := a.backend.SetSteeringAngle(committed); err != nil {
			ui.Warning("Error forwarding steering angle %.3f: %v", committed, err)
		}
	}
	return committed
}

// Current returns the last committed steering angle
func (a *Actuator) Current() float64 {
	return a.loop.Current()
}
