package state

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/markusressel/steer2go/cmd/global"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/persistence"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"os"
	"strconv"
	"time"
)

var vehicleId string

var Command = &cobra.Command{
	Use:              "state",
	Short:            "Drive state related commands",
	Long:             `The drive state (mode, trim and speed setpoint) is restored when the daemon is restarted.`,
	TraverseChildren: true,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved drive state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := openPersistence()

		state, err := p.LoadDriveState(vehicleId)
		if errors.Is(err, os.ErrNotExist) {
			ui.Info("No drive state saved for %s", vehicleId)
			return nil
		}
		if err != nil {
			return err
		}

		tab := table.Table{
			Headers: []string{"Vehicle", "Mode", "Trim", "Speed", "Saved at"},
			Rows:    [][]string{stateRow(vehicleId, state)},
		}
		var buf bytes.Buffer
		err = tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if err != nil {
			return err
		}
		ui.Printfln(buf.String())
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved drive state",
	Long:  `The daemon will start in its default mode and speed on the next start.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := openPersistence()

		if err := p.DeleteDriveState(vehicleId); err != nil {
			return err
		}
		ui.Success("Deleted drive state of %s", vehicleId)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&vehicleId,
		"id", "i",
		persistence.DefaultVehicleId,
		"Vehicle ID the state is saved under",
	)

	Command.AddCommand(showCmd)
	Command.AddCommand(resetCmd)
}

func openPersistence() persistence.Persistence {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()

	p := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := p.Init(); err != nil {
		ui.FatalWithoutStacktrace("Cannot open database %s: %v", configuration.CurrentConfig.DbPath, err)
	}
	return p
}

func stateRow(id string, state persistence.DriveState) []string {
	return []string{
		id,
		state.Mode,
		strconv.Itoa(state.TrimStep),
		fmt.Sprintf("%.1f kph", state.Speed),
		state.SavedAt.Format(time.RFC3339),
	}
}
