package internal

import (
	"context"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/testingutils"
	"github.com/markusressel/steer2go/internal/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestInitializeObjects(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Telemetry.Enabled = true
	config.Recorder.Enabled = true

	// WHEN
	collaborators, err := InitializeObjects(context.Background(), config)

	// THEN
	require.NoError(t, err)
	assert.NotNil(t, collaborators.Lane)
	assert.NotNil(t, collaborators.Obstacle)
	assert.Nil(t, collaborators.Pose)
	assert.IsType(t, &vehicle.VirtualVehicle{}, collaborators.Vehicle)
	assert.NotNil(t, collaborators.Publisher)
	assert.NotNil(t, collaborators.Recorder)
	assert.Nil(t, collaborators.Persistence)

	lane, ok := sensors.GetSensor(config.Sensors.Lane.ID)
	assert.True(t, ok)
	assert.Same(t, collaborators.Lane, lane)
}

func TestInitializeObjects_TelemetryDisabled(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Telemetry.Enabled = false
	config.Recorder.Enabled = false

	// WHEN
	collaborators, err := InitializeObjects(context.Background(), config)

	// THEN
	require.NoError(t, err)
	assert.Nil(t, collaborators.Publisher)
	assert.Nil(t, collaborators.Recorder)
}

func TestInitializeObjects_InvalidSensor(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Sensors.Obstacle = &configuration.ProviderConfig{ID: "broken"}

	// WHEN
	_, err := InitializeObjects(context.Background(), config)

	// THEN
	assert.EqualError(t, err, "unable to process sensor configuration broken: no matching sensor type for sensor: broken")
}

func TestInitializeObjects_MissingVehicle(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Vehicle = configuration.VehicleConfig{}

	// WHEN
	_, err := InitializeObjects(context.Background(), config)

	// THEN
	assert.ErrorContains(t, err, "unable to initialize vehicle")
}
