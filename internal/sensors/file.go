package sensors

import (
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/markusressel/steer2go/internal/util"
)

// FileSensor reads whitespace separated values from a file written by an external perception process
type FileSensor struct {
	Config configuration.ProviderConfig `json:"config"`
}

func (sensor FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor FileSensor) GetConfig() configuration.ProviderConfig {
	return sensor.Config
}

func (sensor FileSensor) GetValues() ([]float64, error) {
	return util.ReadFloatsFromFile(sensor.Config.File.Path)
}
