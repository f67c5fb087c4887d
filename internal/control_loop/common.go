package control_loop

type ControlLoop interface {
	// Cycle advances the control loop towards the given target and returns the committed value
	Cycle(target float64) float64
}
