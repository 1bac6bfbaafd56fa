// Package gaussianac implements the Linear-Gaussian Actor-Critic
// algorithm:
//
// https://hal.inria.fr/hal-00764281/PDF/DegrisACC2012.pdf
//
// The algorithm uses linear function approximation to learn both a
// linear state value function critic and a Gaussian policy actor, with
// eligibility traces for both actor and critic gradients. The policy
// computes the mean and the standard deviation of a Gaussian over
// actions as linear functions of the state features.
package gaussianac

import (
	"context"
	"fmt"
	"log"
	"math"

	"golang.org/x/exp/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/gorlkit/gorl/agent"
	"github.com/gorlkit/gorl/checkpoint"
	"github.com/gorlkit/gorl/environment"
	ts "github.com/gorlkit/gorl/timestep"
	"github.com/gorlkit/gorl/utils/floatutils"
	"github.com/gorlkit/gorl/utils/weights"
)

// StdOffset is added to the policy's standard deviation to keep the
// action distribution from collapsing
const StdOffset float64 = 1e-3

// Keys naming the agent's parameters in checkpoints
const (
	MeanWeightsKey   string = "mean"
	StdWeightsKey    string = "std"
	CriticWeightsKey string = "critic"
)

// GaussianAC implements the Linear-Gaussian Actor-Critic agent.
// GaussianAC implements the agent.Agent interface.
//
// The agent references, but does not own, its environment: closing the
// environment is left to whoever constructed it.
type GaussianAC struct {
	environment environment.Environment
	agent.Spaces
	config Config

	// Weights for linear function approximation
	meanWeights   *mat.Dense
	stdWeights    *mat.Dense
	criticWeights *mat.VecDense

	// Eligibility traces
	meanTrace   *mat.Dense
	stdTrace    *mat.Dense
	criticTrace *mat.VecDense

	// Most recent transition, recorded by Step for UpdateModel
	transition *ts.Transition

	source rand.Source
}

// New returns a new GaussianAC agent acting in env. Weights are
// initialized with init.
func New(env environment.Environment, c Config, init weights.Initializer,
	seed uint64) (*GaussianAC, error) {
	actionSpec := env.ActionSpec()
	if actionSpec.Cardinality != environment.Continuous {
		return nil, errors.New("new: actions must be continuous")
	}
	if actionSpec.Shape.Len() != 1 {
		return nil, errors.New("new: GaussianAC does not yet support " +
			"multi-dimensional actions")
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "new")
	}

	spaces := agent.SpacesOf(env)
	features := spaces.StateDim
	actionDims := spaces.ActionDim

	meanWeights := mat.NewDense(actionDims, features, nil)
	stdWeights := mat.NewDense(actionDims, features, nil)
	criticWeightsMat := mat.NewDense(1, features, nil)
	init.Initialize(meanWeights)
	init.Initialize(stdWeights)
	init.Initialize(criticWeightsMat)

	criticWeights := mat.NewVecDense(features,
		criticWeightsMat.RawMatrix().Data)

	return &GaussianAC{
		environment: env,
		Spaces:      spaces,
		config:      c,

		meanWeights:   meanWeights,
		stdWeights:    stdWeights,
		criticWeights: criticWeights,

		meanTrace:   mat.NewDense(actionDims, features, nil),
		stdTrace:    mat.NewDense(actionDims, features, nil),
		criticTrace: mat.NewVecDense(features, nil),

		source: rand.NewSource(seed),
	}, nil
}

// Mean gets the mean of the policy given some state observation
func (g *GaussianAC) Mean(state mat.Vector) *mat.VecDense {
	mean := mat.NewVecDense(g.ActionDim, nil)
	mean.MulVec(g.meanWeights, state)
	return mean
}

// Std gets the standard deviation of the policy given some state
// observation
func (g *GaussianAC) Std(state mat.Vector) *mat.VecDense {
	stdVec := mat.NewVecDense(g.ActionDim, nil)
	stdVec.MulVec(g.stdWeights, state)
	for i := 0; i < stdVec.Len(); i++ {
		stdVec.SetVec(i, math.Exp(stdVec.AtVec(i))+StdOffset)
	}
	return stdVec
}

// SelectAction samples an action from the policy's Gaussian at the
// given state observation
func (g *GaussianAC) SelectAction(state mat.Vector) *mat.VecDense {
	mean := g.Mean(state)
	stdVec := g.Std(state)

	std := mat.NewDiagDense(stdVec.Len(), stdVec.RawVector().Data)
	dist, ok := distmv.NewNormal(mean.RawVector().Data, std, g.source)
	if !ok {
		panic(fmt.Sprintf("selectAction: policy has non-positive-definite "+
			"covariance %v", stdVec))
	}

	return mat.NewVecDense(g.ActionDim, dist.Rand(nil))
}

// Step takes an action in the agent's environment and records the
// resulting transition for the next UpdateModel call
func (g *GaussianAC) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	prior := g.environment.CurrentTimeStep()

	next, last, err := g.environment.Step(action)
	if err != nil {
		return next, last, errors.Wrap(err, "step: could not step environment")
	}

	transition := ts.NewTransition(prior, action, next)
	g.transition = &transition

	return next, last, nil
}

// UpdateModel performs a single actor-critic update using the
// transition recorded by the most recent Step call
func (g *GaussianAC) UpdateModel() error {
	if g.transition == nil {
		// Nothing observed yet
		return nil
	}

	state := g.transition.State
	nextState := g.transition.NextState

	// Calculate TD error δ
	r := g.transition.Reward
	ℽ := g.transition.Discount
	stateValue := mat.Dot(g.criticWeights, state)
	nextStateValue := mat.Dot(g.criticWeights, nextState)
	δ := r + ℽ*nextStateValue - stateValue

	// Update the critic trace and weights
	g.criticTrace.AddScaledVec(state, ℽ*g.config.Decay, g.criticTrace)
	g.criticWeights.AddScaledVec(g.criticWeights, g.config.CriticLearningRate*δ,
		g.criticTrace)

	// Variables needed for gradient computation
	mean := g.Mean(state)
	std := g.Std(state)
	action := g.transition.Action
	row, col := g.meanWeights.Dims()

	// Compute the gradient of the mean
	meanGradScale := mat.NewVecDense(g.ActionDim, nil)
	meanGradScale.SubVec(action, mean)
	meanGradDiv := mat.NewVecDense(g.ActionDim, nil)
	meanGradDiv.MulElemVec(std, std)
	meanGradScale.DivElemVec(meanGradScale, meanGradDiv)
	meanGrad := mat.NewDense(row, col, nil)
	meanGrad.Outer(1.0, meanGradScale, state)

	// Compute the gradient of the standard deviation
	stdGradScale := mat.NewVecDense(g.ActionDim, nil)
	stdGradScale.SubVec(action, mean)
	stdGradScale.MulElemVec(stdGradScale, stdGradScale)
	stdGradDiv := mat.NewVecDense(g.ActionDim, nil)
	stdGradDiv.MulElemVec(std, std)
	stdGradScale.DivElemVec(stdGradScale, stdGradDiv)
	ones := mat.NewVecDense(g.ActionDim, floatutils.Ones(g.ActionDim))
	stdGradScale.SubVec(stdGradScale, ones)
	stdGrad := mat.NewDense(row, col, nil)
	stdGrad.Outer(1.0, stdGradScale, state)

	// Calculate and update the actor traces
	addMeanTrace := mat.NewDense(row, col, nil)
	addMeanTrace.Scale(ℽ*g.config.Decay, g.meanTrace)
	g.meanTrace.Add(meanGrad, addMeanTrace)

	addStdTrace := mat.NewDense(row, col, nil)
	addStdTrace.Scale(ℽ*g.config.Decay, g.stdTrace)
	g.stdTrace.Add(stdGrad, addStdTrace)

	// Update actor weights
	actorLR := g.config.ActorLearningRate
	if g.config.ScaleActorLR && std.Len() == 1 {
		actorLR *= math.Pow(std.AtVec(0), 2)
	}
	addMean := mat.NewDense(row, col, nil)
	addMean.Scale(actorLR*δ, g.meanTrace)
	g.meanWeights.Add(g.meanWeights, addMean)

	addStd := mat.NewDense(row, col, nil)
	addStd.Scale(actorLR*δ, g.stdTrace)
	g.stdWeights.Add(g.stdWeights, addStd)

	return nil
}

// Train runs the full training procedure: Config.TrainEpisodes
// episodes of acting and updating, checkpointing the parameters every
// Config.CheckpointEvery episodes. The context cancels training
// between environmental steps.
func (g *GaussianAC) Train(ctx context.Context) error {
	for ep := 0; ep < g.config.TrainEpisodes; ep++ {
		step, err := g.environment.Reset()
		if err != nil {
			return errors.Wrapf(err, "train: episode %v: could not reset "+
				"environment", ep)
		}

		var score float64
		done := false

		for !done {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			action := g.SelectAction(step.Observation)
			next, last, err := g.Step(action)
			if err != nil {
				return errors.Wrapf(err, "train: episode %v", ep)
			}
			if err := g.UpdateModel(); err != nil {
				return errors.Wrapf(err, "train: episode %v", ep)
			}

			score += next.Reward
			step = next
			done = last
		}
		g.endEpisode()

		log.Printf("episode %d\ttotal score: %d", ep, int(score))

		if g.config.CheckpointEvery > 0 &&
			(ep+1)%g.config.CheckpointEvery == 0 {
			if err := g.SaveParams(g.config.ModelName, ep); err != nil {
				return errors.Wrapf(err, "train: episode %v", ep)
			}
		}
	}

	return nil
}

// SaveParams persists the agent's weights through checkpoint.Save
// under the given model name, tagged with the episode number
func (g *GaussianAC) SaveParams(name string, episode int) error {
	revision, err := checkpoint.Revision(g.config.Revision)
	if err != nil {
		return errors.Wrap(err, "saveParams")
	}

	_, err = checkpoint.Save(g.config.SaveDir, name, revision, episode,
		g.Params())
	if err != nil {
		return errors.Wrap(err, "saveParams")
	}
	return nil
}

// LoadParams restores the agent's weights from a checkpoint file
// previously written by SaveParams. The eligibility traces and
// recorded transition are cleared.
func (g *GaussianAC) LoadParams(path string) error {
	params, err := checkpoint.Load(path)
	if err != nil {
		return errors.Wrap(err, "loadParams")
	}

	mean, err := denseOf(params, MeanWeightsKey, g.ActionDim, g.StateDim)
	if err != nil {
		return errors.Wrap(err, "loadParams")
	}
	std, err := denseOf(params, StdWeightsKey, g.ActionDim, g.StateDim)
	if err != nil {
		return errors.Wrap(err, "loadParams")
	}
	critic, err := denseOf(params, CriticWeightsKey, 1, g.StateDim)
	if err != nil {
		return errors.Wrap(err, "loadParams")
	}

	g.meanWeights = mean
	g.stdWeights = std
	g.criticWeights = mat.NewVecDense(g.StateDim, critic.RawMatrix().Data)
	g.endEpisode()
	g.transition = nil

	return nil
}

// endEpisode zeroes the eligibility traces after an episode completes
func (g *GaussianAC) endEpisode() {
	g.criticTrace.Zero()
	g.stdTrace.Zero()
	g.meanTrace.Zero()
}
