// Package experiment implements functionality for running agents in
// environments
package experiment

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/gorlkit/gorl/agent"
	env "github.com/gorlkit/gorl/environment"
	"github.com/gorlkit/gorl/experiment/tracker"
	ts "github.com/gorlkit/gorl/timestep"
)

// Evaluation drives an agent through a fixed number of episodes in an
// environment and reports the cumulative reward of each.
//
// Each episode resets the environment and then repeatedly selects an
// action from the agent and steps the agent until the environment
// signals the episode is done, accumulating the rewards into the
// episode's score. One summary line naming the episode index and the
// integer-truncated score is logged per episode. When the run ends,
// the environment is closed, provided it implements
// environment.Closer; the close also runs when the run exits early
// through an error or cancellation.
//
// Rendering is performed only when the Config enables it, the episode
// index has reached the configured threshold, and the environment
// implements environment.Renderer.
//
// An Evaluation performs no learning updates and no failure recovery:
// the first environmental error aborts the run. An environment whose
// episodes never end will block until the context is cancelled.
type Evaluation struct {
	environment env.Environment
	agent       agent.Agent
	config      Config
	trackers    []tracker.Tracker
}

// NewEvaluation returns a new Evaluation of an agent on an
// environment. The trackers parameter registers tracker.Trackers that
// cache data generated during the run.
func NewEvaluation(environment env.Environment, a agent.Agent, c Config,
	trackers ...tracker.Tracker) (*Evaluation, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "newEvaluation")
	}

	return &Evaluation{
		environment: environment,
		agent:       a,
		config:      c,
		trackers:    trackers,
	}, nil
}

// Register registers a tracker.Tracker with the Evaluation so that
// data generated during the run can be tracked and saved
func (e *Evaluation) Register(t tracker.Tracker) {
	e.trackers = append(e.trackers, t)
}

// Run runs the full evaluation: Config.Episodes episodes, one summary
// line each, then closes the environment. The context cancels the run
// between environmental steps; cancellation still closes the
// environment.
func (e *Evaluation) Run(ctx context.Context) error {
	defer func() {
		if closer, ok := e.environment.(env.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Printf("run: could not close environment: %v", err)
			}
		}
	}()

	for i := 0; i < e.config.Episodes; i++ {
		score, err := e.RunEpisode(ctx, i)
		if err != nil {
			return errors.Wrapf(err, "run: episode %v", i)
		}

		log.Printf("episode %d\ttotal score: %d", i, int(score))
	}

	return nil
}

// RunEpisode runs a single episode and returns its cumulative reward.
// The episode index determines whether rendering is performed.
func (e *Evaluation) RunEpisode(ctx context.Context, episode int) (float64,
	error) {
	step, err := e.environment.Reset()
	if err != nil {
		return 0, errors.Wrap(err, "runEpisode: could not reset environment")
	}
	e.track(step)

	renderer, canRender := e.environment.(env.Renderer)
	render := e.config.Render && canRender && episode >= e.config.RenderAfter

	var score float64
	done := false

	for !done {
		select {
		case <-ctx.Done():
			return score, ctx.Err()
		default:
		}

		if render {
			renderer.Render()
		}

		action := e.agent.SelectAction(step.Observation)
		next, last, err := e.agent.Step(action)
		if err != nil {
			return score, errors.Wrap(err, "runEpisode: could not step agent")
		}

		score += next.Reward
		e.track(next)

		step = next
		done = last
	}

	return score, nil
}

// Save saves all the data cached by the trackers to disk
func (e *Evaluation) Save() error {
	for _, t := range e.trackers {
		if err := t.Save(); err != nil {
			return errors.Wrap(err, "save")
		}
	}
	return nil
}

// track caches the current timestep in each tracker
func (e *Evaluation) track(t ts.TimeStep) {
	for _, tr := range e.trackers {
		tr.Track(t)
	}
}
