package steering

import (
	"math"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/util"
)

// ObstacleAvoidance converts an obstacle reading into a steering bias that aims
// past the flank of the obstacle, correcting harder the closer it is.
type ObstacleAvoidance struct {
	config configuration.ObstacleConfig
}

func NewObstacleAvoidance(config configuration.ObstacleConfig) *ObstacleAvoidance {
	return &ObstacleAvoidance{
		config: config,
	}
}

// ComputeBias returns the avoidance steering target for the given reading,
// or nothing if the obstacle is missing, out of range or outside the avoidance cone.
func (a *ObstacleAvoidance) ComputeBias(current float64, reading sensors.ObstacleReading) util.Optional[float64] {
	obstacle, ok := reading.Get()
	if !ok {
		return util.None[float64]()
	}
	if a.config.MaxRange > 0 && obstacle.Distance >= a.config.MaxRange {
		return util.None[float64]()
	}

	bearing := obstacle.Bearing
	if math.IsNaN(bearing) || bearing <= -a.config.Cone || bearing >= a.config.Cone {
		return util.None[float64]()
	}

	distance := math.Max(obstacle.Distance, a.config.MinDistance)
	if distance <= 0 {
		return util.None[float64]()
	}

	if bearing > 0 {
		return util.Some(current + (bearing-a.config.TargetOffset)/distance)
	}
	return util.Some(current + (bearing+a.config.TargetOffset)/distance)
}
