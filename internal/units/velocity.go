// Package units provides speed unit constants and conversions
package units

// Unit constants
const (
	MPS = "mps"
	MPH = "mph"
	KPH = "kph"
)

const (
	// MpsToMph is the factor used in telemetry frames
	MpsToMph = 2.237
	MpsToKph = 3.6
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ConvertSpeed converts a speed from meters per second to the target units
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * MpsToMph
	case KPH:
		return speedMPS * MpsToKph
	default:
		return speedMPS
	}
}

// KphToMps converts a speed from kilometers per hour to meters per second
func KphToMps(speedKPH float64) float64 {
	return speedKPH / MpsToKph
}
