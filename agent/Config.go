package agent

import (
	"github.com/gorlkit/gorl/environment"
)

// Config represents a configuration for creating an agent. Configs are
// fixed before a run starts and are not mutated by the agents they
// create.
type Config interface {
	// CreateAgent creates the agent that the config describes
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid
	Validate() error
}
