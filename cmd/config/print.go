package config

import (
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Prints the effective configuration, including default values",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()
		configuration.DetectAndReadConfigFile()
		configuration.LoadConfig()
		pterm.EnableOutput()
		if err := configuration.Validate(); err != nil {
			return err
		}

		data, err := yaml.Marshal(configuration.CurrentConfig)
		if err != nil {
			return err
		}
		ui.Printf("%s", string(data))
		return nil
	},
}

func init() {
	Command.AddCommand(printCmd)
}
