package configuration_test

import (
	"testing"
	"time"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/testingutils"
	"github.com/stretchr/testify/assert"
)

func validate(config configuration.Configuration) error {
	configuration.CurrentConfig = config
	return configuration.Validate()
}

func TestValidateDefaults(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()

	// WHEN
	err := validate(config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateDuplicateSensorId(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Sensors.Obstacle.ID = config.Sensors.Lane.ID

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "duplicate sensor id detected: camera")
}

func TestValidateSensorSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Sensors.Lane.Virtual = nil

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "sensor camera: sub-configuration for sensor is missing, use one of: virtual | file")
}

func TestValidateSensorMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Sensors.Lane.File = &configuration.FileProviderConfig{Path: "/tmp/lane"}

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "sensor camera: only one sensor type can be used per sensor definition block")
}

func TestValidateFileSensorWithoutPath(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Sensors.Lane.Virtual = nil
	config.Sensors.Lane.File = &configuration.FileProviderConfig{}

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "sensor camera: no file path provided")
}

func TestValidateMissingLaneSensorIsAllowed(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Sensors.Lane = nil

	// WHEN
	err := validate(config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateVehicleSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Vehicle.Virtual = nil

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "vehicle: sub-configuration for vehicle is missing, use one of: virtual | can")
}

func TestValidateCanFrameIdsMustBeDistinct(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Vehicle.Virtual = nil
	config.Vehicle.Can = &configuration.CanVehicleConfig{
		Interface:       "vcan0",
		SteeringFrameId: 0x100,
		SpeedFrameId:    0x101,
		BrakeFrameId:    0x100,
	}

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "vehicle: can frame id 0x100 is used more than once")
}

func TestValidateSensorIntervalShorterThanStep(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.ControlLoop.SensorInterval = 5 * time.Millisecond

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "controlLoop: sensorInterval (5ms) must not be shorter than stepInterval (10ms)")
}

func TestValidatePidAllZero(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Pid = configuration.PidConfig{IntegralLimit: 30}

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "pid: all PID constants are zero")
}

func TestValidateBrakeIntensityRange(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Braking.BlindIntensity = 1.5

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "braking: blindIntensity must be within [0, 1]")
}

func TestValidateTelemetryPort(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Telemetry.Port = 0

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "telemetry: invalid port 0")
}

func TestValidateTelemetryDisabledSkipsChecks(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Telemetry.Enabled = false
	config.Telemetry.Port = 0

	// WHEN
	err := validate(config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateTuningIgnoresVehicle(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Vehicle.Virtual = nil
	configuration.CurrentConfig = config

	// WHEN
	err := configuration.ValidateTuning()

	// THEN
	assert.NoError(t, err)
}

func TestValidateTuningChecksSteering(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Steering.MaxAngle = 0
	configuration.CurrentConfig = config

	// WHEN
	err := configuration.ValidateTuning()

	// THEN
	assert.EqualError(t, err, "steering: maxAngle must be within (0, 0.5]")
}

func TestValidateMaxSpeedUpperBound(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.ControlLoop.MaxSpeed = 251

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "controlLoop: maxSpeed must be within (0, 250]")
}

func TestValidateSteeringLimits(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Steering.MaxAngle = 0.6

	// WHEN
	err := validate(config)

	// THEN
	assert.EqualError(t, err, "steering: maxAngle must be within (0, 0.5]")

	// GIVEN
	config = testingutils.CreateConfig()
	config.Steering.MaxStepPerTick = 0.2

	// WHEN
	err = validate(config)

	// THEN
	assert.EqualError(t, err, "steering: maxStepPerTick must be within (0, 0.1]")
}

func TestValidateLimitsAreInclusive(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.ControlLoop.MaxSpeed = configuration.SpeedLimit
	config.Steering.MaxAngle = configuration.MaxAngleLimit
	config.Steering.MaxStepPerTick = configuration.MaxStepLimit

	// WHEN
	err := validate(config)

	// THEN
	assert.NoError(t, err)
}
