package steering

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/markusressel/steer2go/internal/util"
)

var ErrNoLaneSource = errors.New("cannot enable auto mode without a lane source")

type Mode int

const (
	Manual Mode = iota
	Auto
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	default:
		return "manual"
	}
}

// ParseMode is the inverse of Mode.String
func ParseMode(text string) (Mode, error) {
	switch strings.ToLower(text) {
	case "auto":
		return Auto, nil
	case "manual":
		return Manual, nil
	default:
		return Manual, fmt.Errorf("unknown mode: %s", text)
	}
}

// SpeedBackend executes speed commands
type SpeedBackend interface {
	SetCruisingSpeed(kph float64) error
}

// ModeController keeps track of manual/auto mode, the manual steering trim and the speed setpoint
type ModeController struct {
	hasLaneSource bool
	trimConfig    configuration.TrimConfig
	maxSpeed      float64
	backend       SpeedBackend

	mode     Mode
	trimStep int
	speed    float64
}

// NewModeController starts in Auto mode if a lane source is available, in Manual mode otherwise
func NewModeController(hasLaneSource bool, trimConfig configuration.TrimConfig, maxSpeed float64, backend SpeedBackend) *ModeController {
	mode := Manual
	if hasLaneSource {
		mode = Auto
	}
	return &ModeController{
		hasLaneSource: hasLaneSource,
		trimConfig:    trimConfig,
		maxSpeed:      maxSpeed,
		backend:       backend,
		mode:          mode,
	}
}

func (c *ModeController) Mode() Mode {
	return c.mode
}

func (c *ModeController) TrimStep() int {
	return c.trimStep
}

func (c *ModeController) Speed() float64 {
	return c.speed
}

// RequestAuto switches to Auto mode, which is only possible with a lane source
func (c *ModeController) RequestAuto() error {
	if !c.hasLaneSource {
		return ErrNoLaneSource
	}
	c.mode = Auto
	return nil
}

// Trim applies a manual steering input, which always switches to Manual mode.
// Returns the resulting steering target, or false if the step would exceed the trim range.
func (c *ModeController) Trim(step int) (float64, bool) {
	c.mode = Manual
	next := c.trimStep + step
	if next < -c.trimConfig.MaxSteps || next > c.trimConfig.MaxSteps {
		return 0, false
	}
	c.trimStep = next
	return c.TrimAngle(), true
}

// TrimAngle returns the steering target of the current trim step
func (c *ModeController) TrimAngle() float64 {
	return float64(c.trimStep) * c.trimConfig.StepAngle
}

// AdjustSpeed changes the speed setpoint by delta, in any mode
func (c *ModeController) AdjustSpeed(delta float64) float64 {
	return c.SetSpeed(c.speed + delta)
}

// SetSpeed sets the speed setpoint, clamped to [0, maxSpeed], and forwards it to the backend
func (c *ModeController) SetSpeed(kph float64) float64 {
	c.speed = util.Coerce(kph, 0, c.maxSpeed)
	if c.backend != nil {
		if err := c.backend.SetCruisingSpeed(c.speed); err != nil {
			ui.Warning("Error forwarding cruising speed %.1f: %v", c.speed, err)
		}
	}
	return c.speed
}

// Restore applies a previously persisted state, honoring all bounds
func (c *ModeController) Restore(mode Mode, trimStep int, speed float64) {
	c.trimStep = util.Coerce(trimStep, -c.trimConfig.MaxSteps, c.trimConfig.MaxSteps)
	c.mode = Manual
	if mode == Auto {
		if err := c.RequestAuto(); err != nil {
			ui.Warning("Not restoring auto mode: %v", err)
		}
	}
	c.SetSpeed(speed)
}
