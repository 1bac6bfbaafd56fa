package tracker

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	ts "github.com/gorlkit/gorl/timestep"
)

// Return tracks and saves the episodic return of a run. When an
// environment returns a TimeStep, this Tracker extracts the reward and
// accumulates the return of each episode separately.
//
// Note: if an environment wrapper modifies rewards, this Tracker
// tracks the modified rewards returned by the wrapped environment.
//
// Note: an episode must finish for this Tracker to record its return.
// If the last episode in a run does not finish, that episode's return
// is not saved.
type Return struct {
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker which saves its
// data to filename
func NewReturn(filename string) *Return {
	return &Return{filename: filename}
}

// Track tracks the reward seen on a timestep. When the timestep is the
// last in its episode, the accumulated return is recorded and
// accumulation starts over for the next episode.
func (r *Return) Track(step ts.TimeStep) {
	// First timesteps carry no reward
	if step.First() {
		r.currentReturn = 0.0
		return
	}

	r.currentReturn += step.Reward

	if step.Last() {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
	}
}

// Returns returns the episodic returns recorded so far
func (r *Return) Returns() []float64 {
	return r.episodeReturns
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() error {
	file, err := os.Create(r.filename)
	if err != nil {
		return errors.Wrap(err, "save: could not create data file")
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(r.episodeReturns); err != nil {
		return errors.Wrap(err, "save: could not encode return data")
	}

	return nil
}
