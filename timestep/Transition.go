package timestep

import "gonum.org/v1/gonum/mat"

// Transition packages together a single transition of the
// agent-environment interaction: taking Action in State led to
// NextState with some reward and discount.
type Transition struct {
	State     mat.Vector
	Action    *mat.VecDense
	Reward    float64
	Discount  float64
	NextState mat.Vector
}

// NewTransition constructs a Transition from two sequential timesteps
// and the action that connected them
func NewTransition(step TimeStep, action *mat.VecDense,
	nextStep TimeStep) Transition {
	return Transition{
		State:     step.Observation,
		Action:    action,
		Reward:    nextStep.Reward,
		Discount:  nextStep.Discount,
		NextState: nextStep.Observation,
	}
}
