package config

import (
	"github.com/markusressel/steer2go/internal/configuration"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestProviderType(t *testing.T) {
	assert.Equal(t, "virtual", providerType(configuration.ProviderConfig{
		Virtual: &configuration.VirtualProviderConfig{},
	}))
	assert.Equal(t, "file /tmp/lane", providerType(configuration.ProviderConfig{
		File: &configuration.FileProviderConfig{Path: "/tmp/lane"},
	}))
	assert.Equal(t, "unknown", providerType(configuration.ProviderConfig{}))
}

func TestVehicleType(t *testing.T) {
	assert.Equal(t, "virtual", vehicleType(configuration.VehicleConfig{
		Virtual: &configuration.VirtualVehicleConfig{},
	}))
	assert.Equal(t, "can can0", vehicleType(configuration.VehicleConfig{
		Can: &configuration.CanVehicleConfig{Interface: "can0"},
	}))
}
