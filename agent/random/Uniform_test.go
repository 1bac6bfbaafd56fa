package random_test

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/gorlkit/gorl/agent/random"
	"github.com/gorlkit/gorl/environment"
	"github.com/gorlkit/gorl/environment/classiccontrol/pendulum"
)

func newAgent(t *testing.T, c random.Config) *random.Uniform {
	bounds := r1.Interval{Min: -0.01, Max: 0.01}
	starter := environment.NewUniformStarter([]r1.Interval{bounds, bounds},
		42)
	task := pendulum.NewSwingUp(starter, 100)
	env, _, err := pendulum.New(task, 0.99)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}

	a, err := random.New(env, c, 42)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	return a
}

func TestActionsWithinBounds(t *testing.T) {
	a := newAgent(t, random.Config{})
	state := mat.NewVecDense(2, nil)

	for i := 0; i < 1000; i++ {
		action := a.SelectAction(state)
		if action.Len() != 1 {
			t.Fatalf("action has %v dimensions, want 1", action.Len())
		}

		v := action.AtVec(0)
		if v < pendulum.MinAction || v > pendulum.MaxAction {
			t.Fatalf("action %v outside bounds [%v, %v]", v,
				pendulum.MinAction, pendulum.MaxAction)
		}
	}
}

func TestSaveLoadParams(t *testing.T) {
	dir := t.TempDir()
	a := newAgent(t, random.Config{SaveDir: dir, Revision: "abcdef0"})

	if err := a.SaveParams("uniform", 0); err != nil {
		t.Fatalf("saveParams: %v", err)
	}

	path := filepath.Join(dir, "uniform_abcdef0_ep_0.bin")
	if err := a.LoadParams(path); err != nil {
		t.Errorf("loadParams: %v", err)
	}
}

func TestStepDelegatesToEnvironment(t *testing.T) {
	a := newAgent(t, random.Config{})

	step, last, err := a.Step(mat.NewVecDense(1, []float64{1.0}))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if last {
		t.Error("episode should not end on the first step")
	}
	if step.Number != 1 {
		t.Errorf("stepped to timestep %v, want 1", step.Number)
	}
}
