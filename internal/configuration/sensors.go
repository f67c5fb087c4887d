package configuration

type SensorsConfig struct {
	// Lane angle source, the vehicle cannot drive in auto mode without one
	Lane *ProviderConfig `json:"lane,omitempty" yaml:"lane,omitempty"`
	// Obstacle bearing/distance source
	Obstacle *ProviderConfig `json:"obstacle,omitempty" yaml:"obstacle,omitempty"`
	// Speed and position source, falls back to the vehicle backend if missing
	Pose *ProviderConfig `json:"pose,omitempty" yaml:"pose,omitempty"`
}

type ProviderConfig struct {
	ID      string                 `json:"id" yaml:"id"`
	Virtual *VirtualProviderConfig `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	File    *FileProviderConfig    `json:"file,omitempty" yaml:"file,omitempty"`
}

// VirtualProviderConfig configures a provider whose values are set at runtime (e.g. via the API)
type VirtualProviderConfig struct {
	// Initial values, an empty list means "no reading"
	Values []float64 `json:"values,omitempty" yaml:"values,omitempty"`
}

// FileProviderConfig configures a provider reading whitespace separated values from a file,
// an empty file or "none" means "no reading"
type FileProviderConfig struct {
	Path string `json:"path" yaml:"path"`
}
