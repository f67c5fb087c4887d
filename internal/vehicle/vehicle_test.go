package vehicle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/stretchr/testify/assert"
	"go.einride.tech/can"
)

type recordingWriter struct {
	frames []can.Frame
	err    error
}

func (w *recordingWriter) TransmitFrame(_ context.Context, frame can.Frame) error {
	if w.err != nil {
		return w.err
	}
	w.frames = append(w.frames, frame)
	return nil
}

func TestEncodeSteeringFrame(t *testing.T) {
	// WHEN
	frame := EncodeSteeringFrame(0x100, -0.25)

	// THEN
	assert.Equal(t, uint32(0x100), frame.ID)
	assert.Equal(t, uint8(2), frame.Length)
	assert.Equal(t, int64(-250), frame.Data.SignedBitsLittleEndian(0, 16))
}

func TestEncodeSpeedFrame(t *testing.T) {
	// WHEN
	frame := EncodeSpeedFrame(0x101, 50)

	// THEN
	assert.Equal(t, uint64(5000), frame.Data.UnsignedBitsLittleEndian(0, 16))

	// WHEN
	frame = EncodeSpeedFrame(0x101, -3)

	// THEN
	assert.Equal(t, uint64(0), frame.Data.UnsignedBitsLittleEndian(0, 16))
}

func TestEncodeBrakeFrame(t *testing.T) {
	// WHEN
	frame := EncodeBrakeFrame(0x102, 0.4)

	// THEN
	assert.Equal(t, uint8(1), frame.Length)
	assert.Equal(t, uint64(40), frame.Data.UnsignedBitsLittleEndian(0, 8))

	// WHEN
	frame = EncodeBrakeFrame(0x102, 7)

	// THEN
	assert.Equal(t, uint64(100), frame.Data.UnsignedBitsLittleEndian(0, 8))
}

func TestCanVehicle_Transmit(t *testing.T) {
	// GIVEN
	writer := &recordingWriter{}
	v := NewCanVehicleWithWriter(configuration.CanVehicleConfig{
		SteeringFrameId: 0x100,
		SpeedFrameId:    0x101,
		BrakeFrameId:    0x102,
	}, writer)

	// WHEN
	assert.NoError(t, v.SetSteeringAngle(0.1))
	assert.NoError(t, v.SetCruisingSpeed(30))
	assert.NoError(t, v.SetBrakeIntensity(0))

	// THEN
	assert.Len(t, writer.frames, 3)
	assert.Equal(t, uint32(0x100), writer.frames[0].ID)
	assert.Equal(t, uint32(0x101), writer.frames[1].ID)
	assert.Equal(t, uint32(0x102), writer.frames[2].ID)
	_, ok := v.GetPose()
	assert.False(t, ok)
	assert.NoError(t, v.Close())
}

func TestCanVehicle_TransmitError(t *testing.T) {
	// GIVEN
	writer := &recordingWriter{err: errors.New("bus off")}
	v := NewCanVehicleWithWriter(configuration.CanVehicleConfig{SteeringFrameId: 0x1A}, writer)

	// WHEN
	err := v.SetSteeringAngle(0.1)

	// THEN
	assert.EqualError(t, err, "transmit frame 0x1A: bus off")
}

func TestVirtualVehicle_AcceleratesTowardsCruisingSpeed(t *testing.T) {
	// GIVEN
	v := NewVirtualVehicle(configuration.VirtualVehicleConfig{WheelBase: 2.9, MaxDeceleration: 8})
	_ = v.SetCruisingSpeed(36)

	// WHEN
	v.Step(1 * time.Second)

	// THEN
	pose, ok := v.GetPose()
	assert.True(t, ok)
	assert.InDelta(t, MaxAcceleration, pose.SpeedMps, 1e-9)
	assert.InDelta(t, 0, pose.X, 1e-9)
	assert.InDelta(t, MaxAcceleration, pose.Z, 1e-9)

	// WHEN
	for i := 0; i < 10; i++ {
		v.Step(1 * time.Second)
	}

	// THEN
	pose, _ = v.GetPose()
	assert.InDelta(t, 10, pose.SpeedMps, 1e-9)
}

func TestVirtualVehicle_BrakingStopsTheVehicle(t *testing.T) {
	// GIVEN
	v := NewVirtualVehicle(configuration.VirtualVehicleConfig{WheelBase: 2.9, MaxDeceleration: 8})
	_ = v.SetCruisingSpeed(0)
	_ = v.SetBrakeIntensity(1.5)

	// WHEN
	v.Step(500 * time.Millisecond)

	// THEN
	pose, _ := v.GetPose()
	assert.Equal(t, 0.0, pose.SpeedMps)
	assert.Equal(t, 1.0, v.BrakeIntensity())
}

func TestVirtualVehicle_SteeringTurnsRight(t *testing.T) {
	// GIVEN
	v := NewVirtualVehicle(configuration.VirtualVehicleConfig{WheelBase: 2.9, MaxDeceleration: 8})
	_ = v.SetCruisingSpeed(36)
	_ = v.SetSteeringAngle(0.3)

	// WHEN
	for i := 0; i < 50; i++ {
		v.Step(100 * time.Millisecond)
	}

	// THEN
	pose, _ := v.GetPose()
	assert.Greater(t, pose.X, 0.0)
	assert.Equal(t, 0.3, v.SteeringAngle())
}

func TestNewVehicle_MissingConfig(t *testing.T) {
	// WHEN
	_, err := NewVehicle(context.Background(), configuration.VehicleConfig{})

	// THEN
	assert.Error(t, err)
}
