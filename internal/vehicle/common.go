package vehicle

import (
	"context"
	"fmt"
	"time"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/sensors"
)

// Vehicle is the actuation backend executing steering, speed and brake commands
type Vehicle interface {
	// SetSteeringAngle commands the front wheel angle (rad)
	SetSteeringAngle(angle float64) error
	// SetCruisingSpeed commands the target speed (kph)
	SetCruisingSpeed(kph float64) error
	// SetBrakeIntensity commands the brake intensity in [0, 1]
	SetBrakeIntensity(intensity float64) error

	// GetPose returns the current speed and position, if the backend knows about it
	GetPose() (sensors.Pose, bool)

	Close() error
}

// Simulated is implemented by backends which need to be advanced by the control loop
type Simulated interface {
	Step(dt time.Duration)
}

func NewVehicle(ctx context.Context, config configuration.VehicleConfig) (Vehicle, error) {
	if config.Virtual != nil {
		return NewVirtualVehicle(*config.Virtual), nil
	}

	if config.Can != nil {
		return NewCanVehicle(ctx, *config.Can)
	}

	return nil, fmt.Errorf("no matching vehicle type for vehicle config")
}
