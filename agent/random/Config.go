package random

import (
	"github.com/gorlkit/gorl/agent"
	"github.com/gorlkit/gorl/environment"
)

// Config represents a configuration for the Uniform agent
type Config struct {
	// SaveDir is the directory checkpoints are written under. Empty
	// means checkpoint.DefaultDir.
	SaveDir string

	// Revision tags checkpoints with a source revision. Empty means
	// the revision is discovered from the enclosing git repository.
	Revision string
}

// CreateAgent creates the agent that the config describes
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env, c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*Uniform)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	return nil
}
