package sensor

import (
	"fmt"
	"github.com/markusressel/steer2go/cmd/global"
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/sensors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"strconv"
	"strings"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current reading of a sensor",
	Long:             `Prints the raw values of a sensor, or "none" if it currently has no reading.`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor(sensorId)
		if err != nil {
			return err
		}

		values, err := sensor.GetValues()
		if err != nil {
			return err
		}
		fmt.Println(formatValues(values))
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getSensor(id string) (sensors.Sensor, error) {
	global.LoadConfig()

	var availableSensorIds []string
	for _, config := range configuredSensors(configuration.CurrentConfig.Sensors) {
		availableSensorIds = append(availableSensorIds, config.ID)
		if config.ID == id {
			return sensors.NewSensor(*config)
		}
	}

	return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
}

func configuredSensors(config configuration.SensorsConfig) []*configuration.ProviderConfig {
	var result []*configuration.ProviderConfig
	for _, c := range []*configuration.ProviderConfig{config.Lane, config.Obstacle, config.Pose} {
		if c != nil {
			result = append(result, c)
		}
	}
	return result
}

func formatValues(values []float64) string {
	if len(values) <= 0 {
		return "none"
	}
	texts := make([]string, len(values))
	for i, value := range values {
		texts[i] = strconv.FormatFloat(value, 'f', -1, 64)
	}
	return strings.Join(texts, " ")
}
