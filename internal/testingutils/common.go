package testingutils

import (
	"github.com/markusressel/steer2go/internal/configuration"
	"time"
)

// CreateConfig returns a configuration carrying the default tuning of the controller,
// a virtual lane and obstacle sensor and a virtual vehicle.
func CreateConfig() configuration.Configuration {
	return configuration.Configuration{
		DbPath: "./test.db",
		ControlLoop: configuration.ControlLoopConfig{
			StepInterval:    10 * time.Millisecond,
			SensorInterval:  50 * time.Millisecond,
			PublishInterval: 100 * time.Millisecond,
			EventQueueSize:  16,
			InitialSpeed:    50,
			SpeedIncrement:  5,
			MaxSpeed:        250,
		},
		Pid: configuration.PidConfig{
			P:             0.25,
			I:             0.006,
			D:             2.0,
			IntegralLimit: 30,
		},
		Filter: configuration.FilterConfig{
			WindowSize: 3,
		},
		Obstacle: configuration.ObstacleConfig{
			MaxRange:     20,
			Cone:         0.4,
			TargetOffset: 0.25,
			MinDistance:  0.5,
		},
		Steering: configuration.SteeringConfig{
			MaxAngle:       0.5,
			MaxStepPerTick: 0.1,
		},
		Trim: configuration.TrimConfig{
			MaxSteps:  25,
			StepAngle: 0.02,
		},
		Braking: configuration.BrakingConfig{
			BlindIntensity: 0.4,
		},
		Sensors: configuration.SensorsConfig{
			Lane: &configuration.ProviderConfig{
				ID:      "camera",
				Virtual: &configuration.VirtualProviderConfig{},
			},
			Obstacle: &configuration.ProviderConfig{
				ID:      "lidar",
				Virtual: &configuration.VirtualProviderConfig{},
			},
		},
		Vehicle: configuration.VehicleConfig{
			Virtual: &configuration.VirtualVehicleConfig{
				WheelBase:       2.9,
				MaxDeceleration: 8,
			},
		},
		Telemetry: configuration.TelemetryConfig{
			Enabled:               true,
			Host:                  "127.0.0.1",
			Port:                  65432,
			AcceptTimeout:         100 * time.Millisecond,
			WriteTimeout:          50 * time.Millisecond,
			MaxPendingSubscribers: 16,
			RetryInterval:         100 * time.Millisecond,
		},
		Recorder: configuration.RecorderConfig{
			MaxFrames: 1000,
		},
	}
}
