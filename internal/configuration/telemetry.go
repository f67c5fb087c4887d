package configuration

import "time"

type TelemetryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
	// Upper bound for a single accept call, the acceptor checks for shutdown in between
	AcceptTimeout time.Duration `json:"acceptTimeout" yaml:"acceptTimeout"`
	// Upper bound for writing a frame to a single subscriber
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	// Number of accepted connections buffered until the next publish
	MaxPendingSubscribers int `json:"maxPendingSubscribers" yaml:"maxPendingSubscribers"`
	// Delay between two connection attempts of the telemetry client
	RetryInterval time.Duration `json:"retryInterval" yaml:"retryInterval"`
}

type RecorderConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Path      string `json:"path" yaml:"path"`
	MaxFrames int    `json:"maxFrames" yaml:"maxFrames"`
}
