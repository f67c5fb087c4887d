package simulation

import (
	"time"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/controller"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/telemetry"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/markusressel/steer2go/internal/vehicle"
)

// Sample is the controller state after a single simulation step
type Sample struct {
	Time     time.Duration
	Mode     string
	Branch   string
	Steering float64
	Brake    float64
	Speed    float64
	Pose     sensors.Pose
}

type Result struct {
	Scenario string
	Samples  []Sample
	Frames   []telemetry.Frame
	Final    controller.VehicleState
}

// SteeringTrace returns the committed steering angle of every step
func (r Result) SteeringTrace() []float64 {
	result := make([]float64, len(r.Samples))
	for i, sample := range r.Samples {
		result[i] = sample.Steering
	}
	return result
}

// Run drives a controller with virtual sensors and a virtual vehicle through the given scenario.
// The run is deterministic, no wall clock time is involved.
func Run(config configuration.Configuration, scenario Scenario) Result {
	laneConfig := configuration.ProviderConfig{ID: "scenario-lane", Virtual: &configuration.VirtualProviderConfig{}}
	obstacleConfig := configuration.ProviderConfig{ID: "scenario-obstacle", Virtual: &configuration.VirtualProviderConfig{}}
	lane := sensors.NewVirtualSensor(laneConfig)
	obstacle := sensors.NewVirtualSensor(obstacleConfig)

	vehicleConfig := configuration.VirtualVehicleConfig{WheelBase: 2.9, MaxDeceleration: 8}
	if config.Vehicle.Virtual != nil {
		vehicleConfig = *config.Vehicle.Virtual
	}
	car := vehicle.NewVirtualVehicle(vehicleConfig)

	recorderConfig := config.Recorder
	recorderConfig.Enabled = true
	recorder := telemetry.NewRecorder(recorderConfig)

	step := scenario.Step
	if step <= 0 {
		step = config.ControlLoop.StepInterval
	}
	config.ControlLoop.StepInterval = step
	if config.ControlLoop.SensorInterval < step {
		config.ControlLoop.SensorInterval = step
	}

	c := controller.NewSteeringController(config, controller.Collaborators{
		Lane:     lane,
		Obstacle: obstacle,
		Vehicle:  car,
		Recorder: recorder,
	})

	start := time.Unix(0, 0).UTC()
	var elapsed time.Duration
	c.SetClock(func() time.Time {
		return start.Add(elapsed)
	})

	result := Result{Scenario: scenario.Name}
	nextEvent := 0
	for elapsed = 0; elapsed < scenario.Duration; elapsed += step {
		applySegment(&scenario, elapsed, lane, obstacle)

		for nextEvent < len(scenario.Events) && scenario.Events[nextEvent].At <= elapsed {
			event := scenario.Events[nextEvent]
			nextEvent++
			eventType, err := controller.ParseEventType(event.Type)
			if err != nil {
				ui.Warning("Skipping scenario event at %s: %v", event.At, err)
				continue
			}
			c.Submit(controller.Event{Type: eventType, Value: event.Value})
		}

		c.Tick(step)

		state := c.Snapshot()
		result.Samples = append(result.Samples, Sample{
			Time:     elapsed + step,
			Mode:     state.Mode,
			Branch:   state.Branch,
			Steering: state.SteeringAngle,
			Brake:    state.Brake,
			Speed:    state.Speed,
			Pose:     state.Pose,
		})
	}

	result.Frames = recorder.Frames()
	result.Final = c.Snapshot()
	return result
}

func applySegment(scenario *Scenario, t time.Duration, lane *sensors.VirtualSensor, obstacle *sensors.VirtualSensor) {
	segment, ok := scenario.segmentAt(t)
	if !ok {
		lane.SetValues()
		obstacle.SetValues()
		return
	}

	if segment.Lane != nil {
		lane.SetValues(*segment.Lane)
	} else {
		lane.SetValues()
	}

	if segment.Obstacle != nil {
		obstacle.SetValues(segment.Obstacle.Bearing, segment.Obstacle.Distance)
	} else {
		obstacle.SetValues()
	}
}
