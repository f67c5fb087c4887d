package steering

import (
	"github.com/markusressel/steer2go/internal/control_loop"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/util"
)

type Branch int

const (
	// BranchAvoid is used while an obstacle is inside the avoidance cone
	BranchAvoid Branch = iota
	// BranchFollow is used while only the lane is detected
	BranchFollow
	// BranchBlind is used while neither lane nor obstacle is detected
	BranchBlind
)

func (b Branch) String() string {
	switch b {
	case BranchAvoid:
		return "avoid"
	case BranchFollow:
		return "follow"
	case BranchBlind:
		return "blind"
	default:
		return "unknown"
	}
}

// Decision is the result of a single arbitration
type Decision struct {
	Branch Branch
	// Steering target, absent if the steering should not be touched
	Steering util.Optional[float64]
	// Brake intensity in [0, 1]
	Brake float64

	// Avoidance bias candidate, if any
	Avoidance util.Optional[float64]
	// Line following candidate, if any
	Line util.Optional[float64]
}

// Arbiter combines line following and obstacle avoidance into a single command.
// Avoidance has priority over line following, holding still is the fallback.
type Arbiter struct {
	pid        *control_loop.PidControlLoop
	avoidance  *ObstacleAvoidance
	blindBrake float64
}

func NewArbiter(pid *control_loop.PidControlLoop, avoidance *ObstacleAvoidance, blindBrake float64) *Arbiter {
	return &Arbiter{
		pid:        pid,
		avoidance:  avoidance,
		blindBrake: util.Coerce(blindBrake, 0, 1),
	}
}

// Decide computes the command for the current tick
func (a *Arbiter) Decide(lane sensors.LaneReading, obstacle sensors.ObstacleReading, current float64) Decision {
	bias := a.avoidance.ComputeBias(current, obstacle)

	if avoid, ok := bias.Get(); ok {
		decision := Decision{
			Branch:    BranchAvoid,
			Steering:  bias,
			Brake:     0,
			Avoidance: bias,
		}
		if angle, ok := lane.Get(); ok {
			line := a.pid.Update(angle)
			decision.Line = util.Some(line)
			// the more extreme correction wins if both agree on the direction
			if util.StrictlySameSign(avoid, line) {
				if avoid > 0 {
					decision.Steering = util.Some(max(avoid, line))
				} else {
					decision.Steering = util.Some(min(avoid, line))
				}
			}
		} else {
			a.pid.Reset()
		}
		return decision
	}

	if angle, ok := lane.Get(); ok {
		line := util.Some(a.pid.Update(angle))
		return Decision{
			Branch:   BranchFollow,
			Steering: line,
			Brake:    0,
			Line:     line,
		}
	}

	a.pid.Reset()
	return Decision{
		Branch:   BranchBlind,
		Steering: util.None[float64](),
		Brake:    a.blindBrake,
	}
}
