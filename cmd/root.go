package cmd

import (
	"fmt"
	"github.com/markusressel/steer2go/cmd/config"
	"github.com/markusressel/steer2go/cmd/global"
	"github.com/markusressel/steer2go/cmd/sensor"
	"github.com/markusressel/steer2go/cmd/simulate"
	"github.com/markusressel/steer2go/cmd/state"
	"github.com/markusressel/steer2go/cmd/telemetry"
	"github.com/markusressel/steer2go/internal"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"os"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "steer2go",
	Short: "A daemon steering a vehicle along a line while avoiding obstacles.",
	Long: `steer2go is a small control daemon that follows a detected lane,
steers around obstacles and broadcasts the resulting telemetry.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		printHeader()

		global.LoadConfig()

		internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/steer2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)

	rootCmd.AddCommand(sensor.Command)
	rootCmd.AddCommand(simulate.Command)
	rootCmd.AddCommand(state.Command)
	rootCmd.AddCommand(telemetry.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("steer", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("steer2go")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
