package global

import (
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/ui"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadConfig reads and validates the configuration, exiting on validation errors
func LoadConfig() {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.FatalWithoutStacktrace("Config Validation Error: %v", err)
	}
}
