package controller

import (
	"github.com/markusressel/steer2go/internal/control_loop"
	"github.com/markusressel/steer2go/internal/sensors"
)

// VehicleState is a snapshot of the controller state after a tick
type VehicleState struct {
	Mode   string `json:"mode"`
	Branch string `json:"branch,omitempty"`

	SteeringAngle  float64  `json:"steeringAngle"`
	SteeringTarget *float64 `json:"steeringTarget,omitempty"`
	AvoidanceBias  *float64 `json:"avoidanceBias,omitempty"`
	LineCorrection *float64 `json:"lineCorrection,omitempty"`
	TrimStep       int      `json:"trimStep"`
	// Speed setpoint (kph)
	Speed float64 `json:"speed"`
	Brake float64 `json:"brake"`

	RawLane  *float64          `json:"rawLane,omitempty"`
	Lane     *float64          `json:"lane,omitempty"`
	Obstacle *sensors.Obstacle `json:"obstacle,omitempty"`
	Pose     sensors.Pose      `json:"pose"`

	Pid control_loop.PidState `json:"pid"`

	Subscribers int `json:"subscribers"`

	Ticks         uint64 `json:"ticks"`
	SensorSamples uint64 `json:"sensorSamples"`
	AvoidTicks    uint64 `json:"avoidTicks"`
	FollowTicks   uint64 `json:"followTicks"`
	BlindTicks    uint64 `json:"blindTicks"`
	SensorErrors  uint64 `json:"sensorErrors"`
	EventsDropped uint64 `json:"eventsDropped"`
}
