package configuration

import "time"

type ControlLoopConfig struct {
	// Duration of a single simulation step
	StepInterval time.Duration `json:"stepInterval" yaml:"stepInterval"`
	// Wall-clock interval between sensor samples
	SensorInterval time.Duration `json:"sensorInterval" yaml:"sensorInterval"`
	// Wall-clock interval between telemetry frames
	PublishInterval time.Duration `json:"publishInterval" yaml:"publishInterval"`
	// Number of operator events buffered between two ticks
	EventQueueSize int `json:"eventQueueSize" yaml:"eventQueueSize"`

	// Cruising speed commanded when starting in auto mode (kph)
	InitialSpeed float64 `json:"initialSpeed" yaml:"initialSpeed"`
	// Speed change of a single speed up/down input (kph)
	SpeedIncrement float64 `json:"speedIncrement" yaml:"speedIncrement"`
	// Upper bound of the commanded speed (kph)
	MaxSpeed float64 `json:"maxSpeed" yaml:"maxSpeed"`
}
