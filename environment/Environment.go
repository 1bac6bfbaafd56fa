// Package environment outlines the interfaces and structs needed to implement
// concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gorlkit/gorl/timestep"
)

// Environment implements a simulated environment that an agent
// interacts with through discrete steps.
//
// An Environment starts ready to use: the constructor of a concrete
// environment returns the environment together with the first timestep
// of the first episode. Reset starts a new episode. Step takes a
// single environmental step given an action, returning the resulting
// timestep and whether that timestep was the last in the episode.
// Environmental failures are returned, never swallowed.
//
// Environments that can draw themselves or that hold external
// resources additionally implement Renderer or Closer respectively.
type Environment interface {
	// Reset resets the environment between episodes and returns the
	// first timestep of the new episode
	Reset() (timestep.TimeStep, error)

	// Step takes one environmental step given an action and returns
	// the next timestep and whether it is the last in the episode
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)

	// CurrentTimeStep returns the last timestep in the environment
	CurrentTimeStep() timestep.TimeStep

	ObservationSpec() Spec
	ActionSpec() Spec
	DiscountSpec() Spec
}

// Renderer is an environment that can draw its current state as a
// side effect, e.g. to the terminal
type Renderer interface {
	Render()
}

// Closer is an environment that holds external resources which must be
// released once the environment is no longer needed
type Closer interface {
	Close() error
}

// Task implements the reward scheme for taking actions in some
// environment
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking an action in some state,
	// resulting in some next state
	GetReward(state mat.Vector, action mat.Vector, nextState mat.Vector) float64

	// AtGoal returns whether the argument state is a goal state
	AtGoal(state mat.Matrix) bool

	// Min and Max return the minimum and maximum attainable rewards
	Min() float64
	Max() float64

	// RewardSpec returns the reward specification of the Task
	RewardSpec() Spec
}

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when episodes end
type Ender interface {
	// End takes the most recent timestep, adjusts its StepType to
	// timestep.Last if the episode has ended, and returns whether the
	// episode ended
	End(*timestep.TimeStep) bool
}
