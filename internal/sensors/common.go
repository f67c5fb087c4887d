package sensors

import (
	"fmt"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
	"math"
)

var (
	SensorMap = cmap.New[Sensor]()
)

// Obstacle is the nearest obstacle detected within the sensing cone
type Obstacle struct {
	// Bearing of the obstacle relative to the heading (rad)
	Bearing float64 `json:"bearing"`
	// Distance to the obstacle (simulation length units)
	Distance float64 `json:"distance"`
}

// Pose is the current speed and planar position of the vehicle
type Pose struct {
	SpeedMps float64 `json:"speedMps"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
}

// LaneReading is the angular offset of the followed line (rad, positive = line right of heading),
// absent if no line was detected
type LaneReading = util.Optional[float64]

// ObstacleReading is absent if no obstacle was detected
type ObstacleReading = util.Optional[Obstacle]

type Sensor interface {
	GetId() string

	GetConfig() configuration.ProviderConfig

	// GetValues returns the current reading of this sensor, an empty result means "no reading"
	GetValues() ([]float64, error)
}

func NewSensor(config configuration.ProviderConfig) (Sensor, error) {
	if config.Virtual != nil {
		return NewVirtualSensor(config), nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

// GetSensor returns the sensor with the given id
func GetSensor(id string) (Sensor, bool) {
	return SensorMap.Get(id)
}

// ReadLane reads a LaneReading from the given sensor
func ReadLane(sensor Sensor) (LaneReading, error) {
	values, err := readFiniteValues(sensor, "lane")
	if err != nil {
		return util.None[float64](), err
	}
	switch len(values) {
	case 0:
		return util.None[float64](), nil
	case 1:
		return util.Some(values[0]), nil
	default:
		return util.None[float64](), fmt.Errorf("lane sensor %s: expected 1 value, got %d", sensor.GetId(), len(values))
	}
}

// ReadObstacle reads an ObstacleReading (bearing, distance) from the given sensor
func ReadObstacle(sensor Sensor) (ObstacleReading, error) {
	values, err := readFiniteValues(sensor, "obstacle")
	if err != nil {
		return util.None[Obstacle](), err
	}
	switch len(values) {
	case 0:
		return util.None[Obstacle](), nil
	case 2:
		if values[1] < 0 {
			return util.None[Obstacle](), fmt.Errorf("obstacle sensor %s: negative distance %v", sensor.GetId(), values[1])
		}
		return util.Some(Obstacle{Bearing: values[0], Distance: values[1]}), nil
	default:
		return util.None[Obstacle](), fmt.Errorf("obstacle sensor %s: expected 2 values, got %d", sensor.GetId(), len(values))
	}
}

// ReadPose reads a Pose (speed, x, z) from the given sensor
func ReadPose(sensor Sensor) (Pose, bool, error) {
	values, err := readFiniteValues(sensor, "pose")
	if err != nil {
		return Pose{}, false, err
	}
	switch len(values) {
	case 0:
		return Pose{}, false, nil
	case 3:
		return Pose{SpeedMps: values[0], X: values[1], Z: values[2]}, true, nil
	default:
		return Pose{}, false, fmt.Errorf("pose sensor %s: expected 3 values, got %d", sensor.GetId(), len(values))
	}
}

// readFiniteValues returns the values of the sensor, a NaN or infinite value is an error
func readFiniteValues(sensor Sensor, kind string) ([]float64, error) {
	values, err := sensor.GetValues()
	if err != nil {
		return nil, err
	}
	for idx, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%s sensor %s: value %d is not finite (%v)", kind, sensor.GetId(), idx, value)
		}
	}
	return values, nil
}
