// Package agent defines the capability contract that all agents satisfy
package agent

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/gorlkit/gorl/environment"
	"github.com/gorlkit/gorl/timestep"
)

// Agent is the capability contract that every concrete agent variant
// satisfies so that generic routines, such as evaluation, can run
// against any of them.
//
// An Agent is constructed from an Environment and reads its state and
// action dimensionality and action bounds from the environment's
// declared specs. The environment is referenced, not owned: the Agent
// never closes it.
//
// How each capability is implemented is entirely owned by the concrete
// agent. SelectAction may be stateful for learning agents. Step
// delegates to the referenced environment's own Step and may augment
// it with bookkeeping such as recording the transition for a later
// UpdateModel; it must faithfully propagate the done flag and any
// environmental failure. SaveParams must persist through
// checkpoint.Save rather than reinvent the on-disk format.
type Agent interface {
	// SelectAction returns an action for the given state observation,
	// consistent with the environment's action shape and bounds
	SelectAction(state mat.Vector) *mat.VecDense

	// Step takes action in the agent's environment and returns the
	// resulting timestep and whether it was the last in the episode
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)

	// UpdateModel performs a single learning update using whatever
	// internal buffers the agent maintains
	UpdateModel() error

	// LoadParams restores the agent's parameters from a checkpoint
	// file previously written by SaveParams
	LoadParams(path string) error

	// SaveParams persists the agent's current parameters under the
	// given model name, tagged with the episode number
	SaveParams(name string, episode int) error

	// Train runs the full training procedure: the episode loop, update
	// scheduling, and periodic checkpointing
	Train(ctx context.Context) error
}

// Spaces records the dimensionality and bounds an agent reads from its
// environment's declared spaces at construction
type Spaces struct {
	StateDim   int
	ActionDim  int
	ActionLow  float64
	ActionHigh float64
}

// SpacesOf reads the spaces of an environment
func SpacesOf(env environment.Environment) Spaces {
	actionSpec := env.ActionSpec()

	return Spaces{
		StateDim:   env.ObservationSpec().Shape.Len(),
		ActionDim:  actionSpec.Shape.Len(),
		ActionLow:  actionSpec.LowerBound.AtVec(0),
		ActionHigh: actionSpec.UpperBound.AtVec(0),
	}
}
