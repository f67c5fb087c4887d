package sensors

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSensor_Virtual(t *testing.T) {
	// GIVEN
	config := configuration.ProviderConfig{
		ID: "camera",
		Virtual: &configuration.VirtualProviderConfig{
			Values: []float64{0.2},
		},
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	require.NoError(t, err)
	assert.IsType(t, &VirtualSensor{}, sensor)
	reading, err := ReadLane(sensor)
	assert.NoError(t, err)
	assert.True(t, reading.Present)
	assert.Equal(t, 0.2, reading.Value)
}

func TestNewSensor_Unknown(t *testing.T) {
	// WHEN
	_, err := NewSensor(configuration.ProviderConfig{ID: "nothing"})

	// THEN
	assert.EqualError(t, err, "no matching sensor type for sensor: nothing")
}

func TestVirtualSensor_ClearValues(t *testing.T) {
	// GIVEN
	sensor := NewVirtualSensor(configuration.ProviderConfig{ID: "camera"})
	sensor.SetValues(0.1)

	// WHEN
	sensor.SetValues()

	// THEN
	reading, err := ReadLane(sensor)
	assert.NoError(t, err)
	assert.False(t, reading.Present)
}

func TestVirtualSensor_ValuesAreCopied(t *testing.T) {
	// GIVEN
	sensor := NewVirtualSensor(configuration.ProviderConfig{ID: "lidar"})
	sensor.SetValues(0.1, 2.0)

	// WHEN
	values, _ := sensor.GetValues()
	values[0] = 5

	// THEN
	reading, err := ReadObstacle(sensor)
	assert.NoError(t, err)
	assert.Equal(t, Obstacle{Bearing: 0.1, Distance: 2.0}, reading.Value)
}

func TestReadObstacle_WrongValueCount(t *testing.T) {
	// GIVEN
	sensor := NewVirtualSensor(configuration.ProviderConfig{ID: "lidar"})
	sensor.SetValues(0.1)

	// WHEN
	reading, err := ReadObstacle(sensor)

	// THEN
	assert.EqualError(t, err, "obstacle sensor lidar: expected 2 values, got 1")
	assert.False(t, reading.Present)
}

func TestReadObstacle_NegativeDistance(t *testing.T) {
	// GIVEN
	sensor := NewVirtualSensor(configuration.ProviderConfig{ID: "lidar"})
	sensor.SetValues(0.1, -1)

	// WHEN
	reading, err := ReadObstacle(sensor)

	// THEN
	assert.Error(t, err)
	assert.False(t, reading.Present)
}

func TestReadLane_NonFiniteValue(t *testing.T) {
	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		// GIVEN
		sensor := NewVirtualSensor(configuration.ProviderConfig{ID: "camera"})
		sensor.SetValues(value)

		// WHEN
		reading, err := ReadLane(sensor)

		// THEN
		assert.ErrorContains(t, err, "lane sensor camera: value 0 is not finite")
		assert.False(t, reading.Present)
	}
}

func TestReadObstacle_NonFiniteDistance(t *testing.T) {
	// GIVEN
	sensor := NewVirtualSensor(configuration.ProviderConfig{ID: "lidar"})
	sensor.SetValues(0.1, math.Inf(1))

	// WHEN
	reading, err := ReadObstacle(sensor)

	// THEN
	assert.ErrorContains(t, err, "obstacle sensor lidar: value 1 is not finite")
	assert.False(t, reading.Present)
}

func TestReadPose_NonFiniteValue(t *testing.T) {
	// GIVEN
	sensor := NewVirtualSensor(configuration.ProviderConfig{ID: "gps"})
	sensor.SetValues(13.9, math.NaN(), 0)

	// WHEN
	_, present, err := ReadPose(sensor)

	// THEN
	assert.Error(t, err)
	assert.False(t, present)
}

func TestFileSensor_NaN(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "lane")
	require.NoError(t, os.WriteFile(path, []byte("NaN"), 0644))
	sensor, err := NewSensor(configuration.ProviderConfig{
		ID:   "camera",
		File: &configuration.FileProviderConfig{Path: path},
	})
	require.NoError(t, err)

	// WHEN
	reading, err := ReadLane(sensor)

	// THEN
	assert.Error(t, err)
	assert.False(t, reading.Present)
}

func TestReadPose(t *testing.T) {
	// GIVEN
	sensor := NewVirtualSensor(configuration.ProviderConfig{ID: "gps"})
	sensor.SetValues(13.9, 1.5, -2.25)

	// WHEN
	pose, present, err := ReadPose(sensor)

	// THEN
	assert.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, Pose{SpeedMps: 13.9, X: 1.5, Z: -2.25}, pose)
}

func TestFileSensor(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "lane")
	require.NoError(t, os.WriteFile(path, []byte("-0.05"), 0644))
	sensor, err := NewSensor(configuration.ProviderConfig{
		ID:   "camera",
		File: &configuration.FileProviderConfig{Path: path},
	})
	require.NoError(t, err)

	// WHEN
	reading, err := ReadLane(sensor)

	// THEN
	assert.NoError(t, err)
	assert.True(t, reading.Present)
	assert.Equal(t, -0.05, reading.Value)

	// WHEN
	require.NoError(t, os.WriteFile(path, []byte("none"), 0644))
	reading, err = ReadLane(sensor)

	// THEN
	assert.NoError(t, err)
	assert.False(t, reading.Present)
}

func TestSensorMap(t *testing.T) {
	// GIVEN
	sensor := NewVirtualSensor(configuration.ProviderConfig{ID: "registered"})
	SensorMap.Set(sensor.GetId(), sensor)

	// WHEN
	result, exists := GetSensor("registered")

	// THEN
	assert.True(t, exists)
	assert.Equal(t, sensor, result)
}
