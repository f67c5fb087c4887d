package telemetry

import (
	"context"
	"github.com/markusressel/steer2go/cmd/global"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/telemetry"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
)

var (
	address string
	raw     bool
)

var Command = &cobra.Command{
	Use:              "telemetry",
	Short:            "Telemetry related commands",
	Long:             ``,
	TraverseChildren: true,
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Subscribe to the telemetry broadcast of a running daemon",
	Long:  `Prints every received frame. The connection is re-established if it is lost.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()

		publisher := telemetry.NewPublisher(configuration.CurrentConfig.Telemetry)
		target := publisher.Address()
		if len(address) > 0 {
			target = address
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		client := telemetry.NewClient(target, configuration.CurrentConfig.Telemetry.RetryInterval)
		return client.Listen(ctx, printFrame)
	},
}

func init() {
	listenCmd.Flags().StringVarP(&address, "address", "a", "", "Address of the publisher (default is the configured telemetry host and port)")
	listenCmd.Flags().BoolVarP(&raw, "raw", "r", false, "Print frames as received")

	Command.AddCommand(listenCmd)
}

func printFrame(frame telemetry.Frame) {
	if raw {
		data, err := frame.Encode()
		if err != nil {
			ui.Warning("%v", err)
			return
		}
		ui.Printf("%s", string(data))
		return
	}
	ui.Printfln("%s  %7.3f m/s  %6.1f mph  %6.1f kph  x=%8.2f  z=%8.2f",
		frame.Time().Format("15:04:05.000"), frame.SpeedMps, frame.SpeedMph, frame.SpeedKph, frame.PosX, frame.PosZ)
}
