package vehicle

import (
	"context"
	"fmt"
	"math"
	"net"
	"time"

	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/util"
	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

const (
	// upper bound for transmitting a single command frame
	canWriteTimeout = 20 * time.Millisecond
)

// FrameWriter transmits CAN frames
type FrameWriter interface {
	TransmitFrame(ctx context.Context, frame can.Frame) error
}

// CanVehicle forwards actuation commands as CAN frames to a drive-by-wire controller
type CanVehicle struct {
	Config configuration.CanVehicleConfig `json:"config"`

	conn   net.Conn
	writer FrameWriter
}

func NewCanVehicle(ctx context.Context, config configuration.CanVehicleConfig) (*CanVehicle, error) {
	conn, err := socketcan.DialContext(ctx, "can", config.Interface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial %s: %w", config.Interface, err)
	}
	return &CanVehicle{
		Config: config,
		conn:   conn,
		writer: socketcan.NewTransmitter(conn),
	}, nil
}

// NewCanVehicleWithWriter creates a CanVehicle transmitting through the given writer
func NewCanVehicleWithWriter(config configuration.CanVehicleConfig, writer FrameWriter) *CanVehicle {
	return &CanVehicle{
		Config: config,
		writer: writer,
	}
}

func (v *CanVehicle) SetSteeringAngle(angle float64) error {
	return v.transmit(EncodeSteeringFrame(v.Config.SteeringFrameId, angle))
}

func (v *CanVehicle) SetCruisingSpeed(kph float64) error {
	return v.transmit(EncodeSpeedFrame(v.Config.SpeedFrameId, kph))
}

func (v *CanVehicle) SetBrakeIntensity(intensity float64) error {
	return v.transmit(EncodeBrakeFrame(v.Config.BrakeFrameId, intensity))
}

// GetPose is not supported, the pose has to be provided by a sensor
func (v *CanVehicle) GetPose() (sensors.Pose, bool) {
	return sensors.Pose{}, false
}

func (v *CanVehicle) Close() error {
	if v.conn != nil {
		return v.conn.Close()
	}
	return nil
}

func (v *CanVehicle) transmit(frame can.Frame) error {
	ctx, cancel := context.WithTimeout(context.Background(), canWriteTimeout)
	defer cancel()
	if err := v.writer.TransmitFrame(ctx, frame); err != nil {
		return fmt.Errorf("transmit frame 0x%X: %w", frame.ID, err)
	}
	return nil
}

// EncodeSteeringFrame encodes the steering angle as a signed 16 bit value in milliradians
func EncodeSteeringFrame(id uint32, angle float64) can.Frame {
	raw := int64(math.Round(angle * 1000))
	raw = util.Coerce(raw, math.MinInt16, math.MaxInt16)
	frame := can.Frame{ID: id, Length: 2}
	frame.Data.SetSignedBitsLittleEndian(0, 16, raw)
	return frame
}

// EncodeSpeedFrame encodes the cruising speed as an unsigned 16 bit value in 0.01 kph
func EncodeSpeedFrame(id uint32, kph float64) can.Frame {
	raw := int64(math.Round(kph * 100))
	raw = util.Coerce(raw, 0, math.MaxUint16)
	frame := can.Frame{ID: id, Length: 2}
	frame.Data.SetUnsignedBitsLittleEndian(0, 16, uint64(raw))
	return frame
}

// EncodeBrakeFrame encodes the brake intensity as an unsigned 8 bit percentage
func EncodeBrakeFrame(id uint32, intensity float64) can.Frame {
	raw := int64(math.Round(util.Coerce(intensity, 0, 1) * 100))
	frame := can.Frame{ID: id, Length: 1}
	frame.Data.SetUnsignedBitsLittleEndian(0, 8, uint64(raw))
	return frame
}
