// Package gym provides access to OpenAI Gym environments through the
// Go bindings for Gym, found at https://github.com/samuelfneumann/GoGym.
//
// All environments in the Classic Control and MuJoCo suites can be
// used with their default tasks and episode cutoffs.
package gym

import (
	"fmt"

	"github.com/samuelfneumann/gogym"
	"gonum.org/v1/gonum/mat"

	env "github.com/gorlkit/gorl/environment"
	ts "github.com/gorlkit/gorl/timestep"
)

// Env implements access to an OpenAI Gym environment using GoGym. Env
// implements environment.Environment and environment.Closer. Once an
// Env is no longer needed, its Close method should be called to
// release the underlying Python resources.
type Env struct {
	gogym.Environment

	currentStep ts.TimeStep
	discount    float64
}

// New returns a new Env with the given name, which must be a legal
// name from the OpenAI Gym suite, along with the first timestep of the
// first episode.
func New(name string, discount float64, seed uint64) (*Env, ts.TimeStep,
	error) {
	goGymEnv, err := gogym.Make(name)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: could not create "+
			"environment: %v", err)
	}

	goGymEnv.Seed(int(seed))
	obs, err := goGymEnv.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: could not reset "+
			"environment: %v", err)
	}

	gymEnv := &Env{
		Environment: goGymEnv,
		discount:    discount,
	}

	t := ts.New(ts.First, 0, discount, obs, 0)
	gymEnv.currentStep = t

	return gymEnv, t, nil
}

// Step takes a single environmental step
func (g *Env) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	obs, reward, done, err := g.Environment.Step(a)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"GoGym environment: %v", err)
	}

	t := ts.New(ts.Mid, reward, g.discount, obs, g.currentStep.Number+1)
	if done {
		t.StepType = ts.Last
	}
	g.currentStep = t

	return t, done, nil
}

// Reset resets the environment to some starting state
func (g *Env) Reset() (ts.TimeStep, error) {
	obs, err := g.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset "+
			"environment: %v", err)
	}

	t := ts.New(ts.First, 0, g.discount, obs, 0)
	g.currentStep = t

	return t, nil
}

// CurrentTimeStep returns the current timestep in the environment
func (g *Env) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// ObservationSpec returns the observation specification of the
// environment
func (g *Env) ObservationSpec() env.Spec {
	return specOf(g.ObservationSpace(), env.Observation)
}

// ActionSpec returns the action specification of the environment
func (g *Env) ActionSpec() env.Spec {
	return specOf(g.ActionSpace(), env.Action)
}

// DiscountSpec returns the discount specification of the environment
func (g *Env) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	low := mat.NewVecDense(1, []float64{g.discount})

	return env.NewSpec(shape, env.Discount, low, low, env.Continuous)
}

// Close releases the resources of the underlying GoGym environment
func (g *Env) Close() error {
	g.Environment.Close()
	return nil
}

// specOf converts a GoGym space into an environment.Spec
func specOf(space gogym.Space, t env.SpecType) env.Spec {
	var low, high, shape *mat.VecDense
	switch space.(type) {
	case *gogym.BoxSpace, *gogym.DiscreteSpace:
		low = space.Low()[0]
		high = space.High()[0]
		shape = mat.NewVecDense(low.Len(), nil)
	default:
		panic("specOf: invalid space type, package gym supports only " +
			"GoGym's BoxSpace or DiscreteSpace")
	}

	return env.NewSpec(shape, t, low, high, env.Continuous)
}
