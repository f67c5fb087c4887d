package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/markusressel/steer2go/internal/units"
	"github.com/markusressel/steer2go/internal/util"
)

// Frame is a snapshot of the vehicle state sent to telemetry subscribers
type Frame struct {
	SpeedMps float64 `json:"speed_mps"`
	SpeedMph float64 `json:"speed_mph"`
	SpeedKph float64 `json:"speed_kph"`
	PosX     float64 `json:"pos_x"`
	PosZ     float64 `json:"pos_z"`
	// Unix time in seconds
	Ts float64 `json:"ts"`
}

func NewFrame(pose sensors.Pose, now time.Time) Frame {
	return Frame{
		SpeedMps: util.Round(pose.SpeedMps, 3),
		SpeedMph: util.Round(units.ConvertSpeed(pose.SpeedMps, units.MPH), 1),
		SpeedKph: util.Round(units.ConvertSpeed(pose.SpeedMps, units.KPH), 1),
		PosX:     util.Round(pose.X, 2),
		PosZ:     util.Round(pose.Z, 2),
		Ts:       float64(now.Unix()) + float64(now.Nanosecond())/float64(time.Second),
	}
}

// Time returns the timestamp of the frame
func (f Frame) Time() time.Time {
	return time.Unix(0, int64(f.Ts*float64(time.Second)))
}

// Encode returns the newline terminated JSON representation of the frame
func (f Frame) Encode() ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ParseFrame parses a single JSON encoded frame
func ParseFrame(line []byte) (Frame, error) {
	var frame Frame
	if err := json.Unmarshal(line, &frame); err != nil {
		return Frame{}, fmt.Errorf("invalid telemetry frame: %w", err)
	}
	return frame, nil
}
