package vehicle

import (
	"math"
	"sync"
	"time"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/units"
	"github.com/markusressel/steer2go/internal/util"
)

const (
	// MaxAcceleration used when approaching the cruising speed (m/s^2)
	MaxAcceleration = 3.0
)

// VirtualVehicle is a kinematic bicycle model, used for simulations and testing without hardware
type VirtualVehicle struct {
	Config configuration.VirtualVehicleConfig `json:"config"`

	mu sync.RWMutex

	steeringAngle  float64
	cruisingSpeed  float64
	brakeIntensity float64
	speed          float64
	heading        float64
	x              float64
	z              float64
}

func NewVirtualVehicle(config configuration.VirtualVehicleConfig) *VirtualVehicle {
	return &VirtualVehicle{
		Config: config,
	}
}

func (v *VirtualVehicle) SetSteeringAngle(angle float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.steeringAngle = angle
	return nil
}

func (v *VirtualVehicle) SetCruisingSpeed(kph float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cruisingSpeed = units.KphToMps(math.Max(0, kph))
	return nil
}

func (v *VirtualVehicle) SetBrakeIntensity(intensity float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.brakeIntensity = util.Coerce(intensity, 0, 1)
	return nil
}

func (v *VirtualVehicle) GetPose() (sensors.Pose, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return sensors.Pose{SpeedMps: v.speed, X: v.x, Z: v.z}, true
}

// SteeringAngle returns the last commanded steering angle
func (v *VirtualVehicle) SteeringAngle() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.steeringAngle
}

// BrakeIntensity returns the last commanded brake intensity
func (v *VirtualVehicle) BrakeIntensity() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.brakeIntensity
}

// Step advances the model by dt
func (v *VirtualVehicle) Step(dt time.Duration) {
	seconds := dt.Seconds()
	if seconds <= 0 {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	maxChange := MaxAcceleration * seconds
	acceleration := util.Coerce(v.cruisingSpeed-v.speed, -maxChange, maxChange)
	braking := v.brakeIntensity * v.Config.MaxDeceleration * seconds
	v.speed = math.Max(0, v.speed+acceleration-braking)

	if v.Config.WheelBase > 0 {
		v.heading += v.speed / v.Config.WheelBase * math.Tan(v.steeringAngle) * seconds
	}
	v.x += v.speed * math.Sin(v.heading) * seconds
	v.z += v.speed * math.Cos(v.heading) * seconds
}

func (v *VirtualVehicle) Close() error {
	return nil
}
