package simulate

import (
	"bytes"
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/steer2go/cmd/global"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/simulation"
	"github.com/markusressel/steer2go/internal/telemetry"
	"github.com/markusressel/steer2go/internal/ui"
	"github.com/markusressel/steer2go/internal/util"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"strconv"
)

var (
	scenarioPath string
	exportPath   string
	plot         bool
)

var Command = &cobra.Command{
	Use:   "simulate",
	Short: "Run the controller against a scenario file",
	Long: `Drives the controller with virtual sensors and a virtual vehicle through a scenario
and prints a summary of the run. No wall clock time is involved, so runs are reproducible.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.ValidateTuning(); err != nil {
			return err
		}

		scenario, err := simulation.LoadScenario(scenarioPath)
		if err != nil {
			return err
		}

		result := simulation.Run(configuration.CurrentConfig, *scenario)

		if err := printTable([]string{"Scenario", "Steps", "Frames", "Mode", "Speed", "Steering", "Brake"}, [][]string{summary(result)}); err != nil {
			return err
		}
		ui.Printfln("")
		if err := printTable([]string{"Branch", "Samples"}, branchRows(result)); err != nil {
			return err
		}
		ui.Printfln("")
		if err := printTable([]string{"Steering min", "Steering avg", "Steering max"}, [][]string{steeringRow(result)}); err != nil {
			return err
		}

		if plot && len(result.Samples) > 0 {
			ui.Printfln("")
			graph := asciigraph.Plot(result.SteeringTrace(), asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption("steering angle (rad)"))
			ui.Printfln(graph)
		}
		if plot && len(result.Frames) > 0 {
			speeds := make([]float64, len(result.Frames))
			for i, frame := range result.Frames {
				speeds[i] = frame.SpeedKph
			}
			ui.Printfln("")
			graph := asciigraph.Plot(speeds, asciigraph.Height(10), asciigraph.Width(100), asciigraph.Caption("speed (kph)"))
			ui.Printfln(graph)
		}

		if len(exportPath) > 0 {
			recorder := telemetry.NewRecorder(configuration.RecorderConfig{Path: exportPath})
			for _, frame := range result.Frames {
				recorder.Record(frame)
			}
			if err := recorder.Export(); err != nil {
				return err
			}
			ui.Success("Telemetry of %d frames written to %s", len(result.Frames), exportPath)
		}

		return nil
	},
}

func init() {
	Command.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "Scenario file")
	Command.Flags().StringVarP(&exportPath, "export", "e", "", "Write the telemetry frames of the run to this CSV file")
	Command.Flags().BoolVarP(&plot, "plot", "p", true, "Plot steering angle and speed")
	_ = Command.MarkFlagRequired("scenario")
}

func summary(result simulation.Result) []string {
	final := result.Final
	return []string{
		result.Scenario,
		strconv.Itoa(len(result.Samples)),
		strconv.Itoa(len(result.Frames)),
		final.Mode,
		fmt.Sprintf("%.1f kph", final.Speed),
		fmt.Sprintf("%.4f", final.SteeringAngle),
		fmt.Sprintf("%.2f", final.Brake),
	}
}

// branchRows counts the samples spent in each branch, in order of first appearance
func branchRows(result simulation.Result) [][]string {
	var order []string
	counts := map[string]int{}
	for _, sample := range result.Samples {
		branch := sample.Branch
		if len(branch) <= 0 {
			branch = "manual"
		}
		if _, ok := counts[branch]; !ok {
			order = append(order, branch)
		}
		counts[branch]++
	}

	rows := make([][]string, 0, len(order))
	for _, branch := range order {
		rows = append(rows, []string{branch, strconv.Itoa(counts[branch])})
	}
	return rows
}

func steeringRow(result simulation.Result) []string {
	trace := result.SteeringTrace()
	return []string{
		fmt.Sprintf("%.4f", util.Min(trace)),
		fmt.Sprintf("%.4f", util.Avg(trace)),
		fmt.Sprintf("%.4f", util.Max(trace)),
	}
}

func printTable(headers []string, rows [][]string) error {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
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
}
