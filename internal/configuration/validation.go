package configuration

import (
	"errors"
	"fmt"
	"github.com/markusressel/steer2go/internal/ui"
	"golang.org/x/exp/slices"
	"strings"
)

const (
	ProviderTypeVirtual = "virtual"
	ProviderTypeFile    = "file"

	VehicleTypeVirtual = "virtual"
	VehicleTypeCan     = "can"

	// limits of the steering hardware and the speed setpoint range
	SpeedLimit    = 250.0
	MaxAngleLimit = 0.5
	MaxStepLimit  = 0.1
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

// ValidateTuning only validates the control loop and steering parameters,
// sensors and vehicle are not checked
func ValidateTuning() error {
	if err := validateControlLoop(&CurrentConfig); err != nil {
		return err
	}
	return validateSteering(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateControlLoop(config)
	if err != nil {
		return err
	}
	err = validateSteering(config)
	if err != nil {
		return err
	}
	err = validateSensors(config)
	if err != nil {
		return err
	}
	err = validateVehicle(config)
	if err != nil {
		return err
	}
	return validateTelemetry(config)
}

func validateControlLoop(config *Configuration) error {
	c := config.ControlLoop
	if c.StepInterval <= 0 {
		return errors.New("controlLoop: stepInterval must be > 0")
	}
	if c.SensorInterval < c.StepInterval {
		return fmt.Errorf("controlLoop: sensorInterval (%s) must not be shorter than stepInterval (%s)", c.SensorInterval, c.StepInterval)
	}
	if c.PublishInterval <= 0 {
		return errors.New("controlLoop: publishInterval must be > 0")
	}
	if c.EventQueueSize <= 0 {
		return errors.New("controlLoop: eventQueueSize must be >= 1")
	}
	if c.MaxSpeed <= 0 || c.MaxSpeed > SpeedLimit {
		return fmt.Errorf("controlLoop: maxSpeed must be within (0, %v]", SpeedLimit)
	}
	if c.InitialSpeed < 0 || c.InitialSpeed > c.MaxSpeed {
		return fmt.Errorf("controlLoop: initialSpeed must be within [0, %v]", c.MaxSpeed)
	}
	if c.SpeedIncrement <= 0 {
		return errors.New("controlLoop: speedIncrement must be > 0")
	}
	return nil
}

func validateSteering(config *Configuration) error {
	if config.Pid.P == 0 && config.Pid.I == 0 && config.Pid.D == 0 {
		return errors.New("pid: all PID constants are zero")
	}
	if config.Pid.IntegralLimit <= 0 {
		return errors.New("pid: integralLimit must be > 0")
	}
	if config.Filter.WindowSize <= 0 {
		return errors.New("filter: windowSize must be >= 1")
	}
	if config.Obstacle.MaxRange <= 0 {
		return errors.New("obstacle: maxRange must be > 0")
	}
	if config.Obstacle.Cone <= 0 {
		return errors.New("obstacle: cone must be > 0")
	}
	if config.Obstacle.MinDistance <= 0 {
		return errors.New("obstacle: minDistance must be > 0")
	}
	if config.Steering.MaxAngle <= 0 || config.Steering.MaxAngle > MaxAngleLimit {
		return fmt.Errorf("steering: maxAngle must be within (0, %v]", MaxAngleLimit)
	}
	if config.Steering.MaxStepPerTick <= 0 || config.Steering.MaxStepPerTick > MaxStepLimit {
		return fmt.Errorf("steering: maxStepPerTick must be within (0, %v]", MaxStepLimit)
	}
	if config.Trim.MaxSteps <= 0 {
		return errors.New("trim: maxSteps must be >= 1")
	}
	if config.Braking.BlindIntensity < 0 || config.Braking.BlindIntensity > 1 {
		return errors.New("braking: blindIntensity must be within [0, 1]")
	}
	return nil
}

func validateSensors(config *Configuration) error {
	var ids []string
	providers := map[string]*ProviderConfig{
		"lane":     config.Sensors.Lane,
		"obstacle": config.Sensors.Obstacle,
		"pose":     config.Sensors.Pose,
	}
	for _, kind := range []string{"lane", "obstacle", "pose"} {
		providerConfig := providers[kind]
		if providerConfig == nil {
			continue
		}
		if len(providerConfig.ID) <= 0 {
			return fmt.Errorf("sensor %s: missing id", kind)
		}
		if slices.Contains(ids, providerConfig.ID) {
			return fmt.Errorf("duplicate sensor id detected: %s", providerConfig.ID)
		}
		ids = append(ids, providerConfig.ID)

		subConfigs := 0
		if providerConfig.Virtual != nil {
			subConfigs++
		}
		if providerConfig.File != nil {
			subConfigs++
		}
		supportedTypes := []string{ProviderTypeVirtual, ProviderTypeFile}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", providerConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: %s", providerConfig.ID, strings.Join(supportedTypes, " | "))
		}

		if providerConfig.File != nil && len(providerConfig.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: no file path provided", providerConfig.ID)
		}
	}

	if config.Sensors.Lane == nil {
		ui.Warning("No lane sensor configured, auto mode will not be available")
	}

	return nil
}

func validateVehicle(config *Configuration) error {
	subConfigs := 0
	if config.Vehicle.Virtual != nil {
		subConfigs++
	}
	if config.Vehicle.Can != nil {
		subConfigs++
	}
	supportedTypes := []string{VehicleTypeVirtual, VehicleTypeCan}
	if subConfigs > 1 {
		return errors.New("vehicle: only one vehicle type can be used")
	}
	if subConfigs <= 0 {
		return fmt.Errorf("vehicle: sub-configuration for vehicle is missing, use one of: %s", strings.Join(supportedTypes, " | "))
	}

	if config.Vehicle.Can != nil {
		canConfig := config.Vehicle.Can
		if len(canConfig.Interface) <= 0 {
			return errors.New("vehicle: can interface is missing")
		}
		frameIds := []uint32{canConfig.SteeringFrameId, canConfig.SpeedFrameId, canConfig.BrakeFrameId}
		for idx, id := range frameIds {
			if slices.Contains(frameIds[idx+1:], id) {
				return fmt.Errorf("vehicle: can frame id 0x%X is used more than once", id)
			}
		}
	}

	return nil
}

func validateTelemetry(config *Configuration) error {
	if !config.Telemetry.Enabled {
		return nil
	}
	if config.Telemetry.Port <= 0 || config.Telemetry.Port > 65535 {
		return fmt.Errorf("telemetry: invalid port %d", config.Telemetry.Port)
	}
	if config.Telemetry.AcceptTimeout <= 0 {
		return errors.New("telemetry: acceptTimeout must be > 0")
	}
	if config.Telemetry.WriteTimeout <= 0 {
		return errors.New("telemetry: writeTimeout must be > 0")
	}
	if config.Telemetry.MaxPendingSubscribers <= 0 {
		return errors.New("telemetry: maxPendingSubscribers must be >= 1")
	}
	return nil
}
