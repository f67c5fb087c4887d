package configuration

import (
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type Configuration struct {
	DbPath string `json:"dbPath" yaml:"dbPath"`

	ControlLoop ControlLoopConfig `json:"controlLoop" yaml:"controlLoop"`

	Pid      PidConfig      `json:"pid" yaml:"pid"`
	Filter   FilterConfig   `json:"filter" yaml:"filter"`
	Obstacle ObstacleConfig `json:"obstacle" yaml:"obstacle"`
	Steering SteeringConfig `json:"steering" yaml:"steering"`
	Trim     TrimConfig     `json:"trim" yaml:"trim"`
	Braking  BrakingConfig  `json:"braking" yaml:"braking"`

	Sensors SensorsConfig `json:"sensors" yaml:"sensors"`
	Vehicle VehicleConfig `json:"vehicle" yaml:"vehicle"`

	Telemetry  TelemetryConfig  `json:"telemetry" yaml:"telemetry"`
	Recorder   RecorderConfig   `json:"recorder" yaml:"recorder"`
	Api        ApiConfig        `json:"api" yaml:"api"`
	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`
	Profiling  ProfilingConfig  `json:"profiling" yaml:"profiling"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("steer2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Fatal("Couldn't detect home directory: %v", err)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/steer2go/")
	}

	viper.SetEnvPrefix("steer2go")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/steer2go/steer2go.db")

	viper.SetDefault("controlLoop.stepInterval", 32*time.Millisecond)
	viper.SetDefault("controlLoop.sensorInterval", 50*time.Millisecond)
	viper.SetDefault("controlLoop.publishInterval", 100*time.Millisecond)
	viper.SetDefault("controlLoop.eventQueueSize", 16)
	viper.SetDefault("controlLoop.initialSpeed", 50.0)
	viper.SetDefault("controlLoop.speedIncrement", 5.0)
	viper.SetDefault("controlLoop.maxSpeed", 250.0)

	viper.SetDefault("pid.p", 0.25)
	viper.SetDefault("pid.i", 0.006)
	viper.SetDefault("pid.d", 2.0)
	viper.SetDefault("pid.integralLimit", 30.0)

	viper.SetDefault("filter.windowSize", 3)

	viper.SetDefault("obstacle.maxRange", 20.0)
	viper.SetDefault("obstacle.cone", 0.4)
	viper.SetDefault("obstacle.targetOffset", 0.25)
	viper.SetDefault("obstacle.minDistance", 0.5)

	viper.SetDefault("steering.maxAngle", 0.5)
	viper.SetDefault("steering.maxStepPerTick", 0.1)

	viper.SetDefault("trim.maxSteps", 25)
	viper.SetDefault("trim.stepAngle", 0.02)

	viper.SetDefault("braking.blindIntensity", 0.4)

	viper.SetDefault("telemetry.enabled", true)
	viper.SetDefault("telemetry.host", "127.0.0.1")
	viper.SetDefault("telemetry.port", 65432)
	viper.SetDefault("telemetry.acceptTimeout", 1*time.Second)
	viper.SetDefault("telemetry.writeTimeout", 50*time.Millisecond)
	viper.SetDefault("telemetry.maxPendingSubscribers", 16)
	viper.SetDefault("telemetry.retryInterval", 2*time.Second)

	viper.SetDefault("recorder.enabled", false)
	viper.SetDefault("recorder.path", "~/steer2go-session.csv")
	viper.SetDefault("recorder.maxFrames", 100000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("profiling.enabled", false)
	viper.SetDefault("profiling.host", "localhost")
	viper.SetDefault("profiling.port", 6060)
}

// DetectAndReadConfigFile reads the config file and returns its path.
// A missing config file is not an error, defaults are used instead.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			ui.Warning("No configuration file found, using defaults")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
