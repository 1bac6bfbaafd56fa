// Package random implements agents that select actions at random,
// independent of the state. They carry no learning machinery and exist
// as baselines and as the simplest exercise of the agent contract.
package random

import (
	"context"

	"golang.org/x/exp/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/gorlkit/gorl/agent"
	"github.com/gorlkit/gorl/checkpoint"
	"github.com/gorlkit/gorl/environment"
	"github.com/gorlkit/gorl/timestep"
)

// Uniform selects actions uniformly at random within the action bounds
// of its environment. Uniform implements the agent.Agent interface.
type Uniform struct {
	environment environment.Environment
	agent.Spaces

	dist   *distmv.Uniform
	config Config
}

// New returns a new Uniform agent acting in env
func New(env environment.Environment, c Config, seed uint64) (*Uniform,
	error) {
	actionSpec := env.ActionSpec()
	if actionSpec.Cardinality != environment.Continuous {
		return nil, errors.New("new: actions must be continuous")
	}

	bounds := make([]r1.Interval, actionSpec.Shape.Len())
	for i := range bounds {
		bounds[i] = r1.Interval{
			Min: actionSpec.LowerBound.AtVec(i),
			Max: actionSpec.UpperBound.AtVec(i),
		}
	}

	return &Uniform{
		environment: env,
		Spaces:      agent.SpacesOf(env),
		dist:        distmv.NewUniform(bounds, rand.NewSource(seed)),
		config:      c,
	}, nil
}

// SelectAction returns an action drawn uniformly at random from the
// environment's action bounds. The state is ignored.
func (u *Uniform) SelectAction(_ mat.Vector) *mat.VecDense {
	return mat.NewVecDense(u.ActionDim, u.dist.Rand(nil))
}

// Step takes an action in the agent's environment
func (u *Uniform) Step(action *mat.VecDense) (timestep.TimeStep, bool,
	error) {
	next, last, err := u.environment.Step(action)
	if err != nil {
		return next, last, errors.Wrap(err, "step: could not step environment")
	}
	return next, last, nil
}

// UpdateModel is a no-op: a Uniform agent has no model to update
func (u *Uniform) UpdateModel() error {
	return nil
}

// LoadParams restores the agent from a checkpoint file. A Uniform
// agent persists no parameters, so loading only verifies that the
// checkpoint is readable.
func (u *Uniform) LoadParams(path string) error {
	_, err := checkpoint.Load(path)
	if err != nil {
		return errors.Wrap(err, "loadParams")
	}
	return nil
}

// SaveParams persists an empty parameter set under the given model
// name, tagged with the episode number
func (u *Uniform) SaveParams(name string, episode int) error {
	revision, err := checkpoint.Revision(u.config.Revision)
	if err != nil {
		return errors.Wrap(err, "saveParams")
	}

	_, err = checkpoint.Save(u.config.SaveDir, name, revision, episode,
		checkpoint.Params{})
	if err != nil {
		return errors.Wrap(err, "saveParams")
	}
	return nil
}

// Train is a no-op: a Uniform agent has nothing to train
func (u *Uniform) Train(_ context.Context) error {
	return nil
}
