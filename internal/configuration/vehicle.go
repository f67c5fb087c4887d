package configuration

type VehicleConfig struct {
	Virtual *VirtualVehicleConfig `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	Can     *CanVehicleConfig     `json:"can,omitempty" yaml:"can,omitempty"`
}

type VirtualVehicleConfig struct {
	// Distance between front and rear axle
	WheelBase float64 `json:"wheelBase" yaml:"wheelBase"`
	// Deceleration at full brake intensity (m/s^2)
	MaxDeceleration float64 `json:"maxDeceleration" yaml:"maxDeceleration"`
}

type CanVehicleConfig struct {
	Interface       string `json:"interface" yaml:"interface"`
	SteeringFrameId uint32 `json:"steeringFrameId" yaml:"steeringFrameId"`
	SpeedFrameId    uint32 `json:"speedFrameId" yaml:"speedFrameId"`
	BrakeFrameId    uint32 `json:"brakeFrameId" yaml:"brakeFrameId"`
}
