package config

import (
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/spf13/cobra"
	"os"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// note: config file path parameter comes from the root command (-c)
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		if err := configuration.Validate(); err != nil {
			ui.Error("Validation failed: %v", err)
			os.Exit(1)
		}

		printSummary(configuration.CurrentConfig)
		ui.Success("Config looks good! :)")
		return nil
	},
}

func printSummary(config configuration.Configuration) {
	providers := map[string]*configuration.ProviderConfig{
		"lane":     config.Sensors.Lane,
		"obstacle": config.Sensors.Obstacle,
		"pose":     config.Sensors.Pose,
	}
	for _, kind := range []string{"lane", "obstacle", "pose"} {
		provider := providers[kind]
		if provider == nil {
			ui.Info("%-8s source: none", kind)
			continue
		}
		ui.Info("%-8s source: %s (%s)", kind, provider.ID, providerType(*provider))
	}
	ui.Info("vehicle  backend: %s", vehicleType(config.Vehicle))
}

func providerType(config configuration.ProviderConfig) string {
	switch {
	case config.Virtual != nil:
		return configuration.ProviderTypeVirtual
	case config.File != nil:
		return configuration.ProviderTypeFile + " " + config.File.Path
	default:
		return "unknown"
	}
}

func vehicleType(config configuration.VehicleConfig) string {
	switch {
	case config.Virtual != nil:
		return configuration.VehicleTypeVirtual
	case config.Can != nil:
		return configuration.VehicleTypeCan + " " + config.Can.Interface
	default:
		return "unknown"
	}
}

func init() {
	Command.AddCommand(validateCmd)
}
