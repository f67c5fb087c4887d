package configuration

type PidConfig struct {
	P float64 `json:"p" yaml:"p"`
	I float64 `json:"i" yaml:"i"`
	D float64 `json:"d" yaml:"d"`
	// The integral accumulator is kept strictly inside (-IntegralLimit, IntegralLimit)
	IntegralLimit float64 `json:"integralLimit" yaml:"integralLimit"`
}

type FilterConfig struct {
	WindowSize int `json:"windowSize" yaml:"windowSize"`
}

type ObstacleConfig struct {
	// Obstacles at or beyond this distance are ignored
	MaxRange float64 `json:"maxRange" yaml:"maxRange"`
	// Half-width of the avoidance cone (rad)
	Cone float64 `json:"cone" yaml:"cone"`
	// Offset from the obstacle bearing the vehicle aims for (rad)
	TargetOffset float64 `json:"targetOffset" yaml:"targetOffset"`
	// Lower bound for the distance used in the bias calculation
	MinDistance float64 `json:"minDistance" yaml:"minDistance"`
}

type SteeringConfig struct {
	MaxAngle       float64 `json:"maxAngle" yaml:"maxAngle"`
	MaxStepPerTick float64 `json:"maxStepPerTick" yaml:"maxStepPerTick"`
}

type TrimConfig struct {
	MaxSteps  int     `json:"maxSteps" yaml:"maxSteps"`
	StepAngle float64 `json:"stepAngle" yaml:"stepAngle"`
}

type BrakingConfig struct {
	// Brake intensity applied while neither lane nor obstacle is detected
	BlindIntensity float64 `json:"blindIntensity" yaml:"blindIntensity"`
}
