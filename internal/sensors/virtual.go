package sensors

import (
	"github.com/markusressel/steer2go/internal/configuration"
	"sync"
)

// VirtualSensor holds values which are set at runtime, e.g. through the API or a simulation
type VirtualSensor struct {
	Config configuration.ProviderConfig `json:"config"`

	mu     sync.RWMutex
	values []float64
}

func NewVirtualSensor(config configuration.ProviderConfig) *VirtualSensor {
	sensor := &VirtualSensor{
		Config: config,
	}
	if config.Virtual != nil {
		sensor.SetValues(config.Virtual.Values...)
	}
	return sensor
}

func (sensor *VirtualSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *VirtualSensor) GetConfig() configuration.ProviderConfig {
	return sensor.Config
}

func (sensor *VirtualSensor) GetValues() ([]float64, error) {
	sensor.mu.RLock()
	defer sensor.mu.RUnlock()
	if len(sensor.values) == 0 {
		return nil, nil
	}
	result := make([]float64, len(sensor.values))
	copy(result, sensor.values)
	return result, nil
}

// SetValues replaces the current reading, calling it without values clears the reading
func (sensor *VirtualSensor) SetValues(values ...float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.values = append(sensor.values[:0], values...)
}
