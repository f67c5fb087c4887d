package configuration

type ProfilingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`
}
