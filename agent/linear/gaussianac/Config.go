package gaussianac

import (
	"github.com/pkg/errors"

	"github.com/gorlkit/gorl/agent"
	"github.com/gorlkit/gorl/environment"
	"github.com/gorlkit/gorl/utils/weights"
)

// Config represents a configuration for the GaussianAC agent
type Config struct {
	ActorLearningRate  float64
	CriticLearningRate float64

	// Decay is the eligibility trace decay rate λ
	Decay float64

	// ScaleActorLR scales the actor learning rate by the policy
	// variance, which keeps updates stable as the policy narrows
	ScaleActorLR bool

	// TrainEpisodes is the number of episodes Train runs
	TrainEpisodes int

	// CheckpointEvery is the number of episodes between checkpoints
	// during training. Zero disables checkpointing.
	CheckpointEvery int

	// ModelName names the checkpoints written during training
	ModelName string

	// SaveDir is the directory checkpoints are written under. Empty
	// means checkpoint.DefaultDir.
	SaveDir string

	// Revision tags checkpoints with a source revision. Empty means
	// the revision is discovered from the enclosing git repository.
	Revision string
}

// CreateAgent creates the agent from the Config. Agent weights are
// always initialized to zero using this function. To initialize from
// some other distribution, use the agent's constructor manually.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	init := weights.NewLinearUV(weights.NewZeroUV())
	return New(env, c, init, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*GaussianAC)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.ActorLearningRate < 0 || c.CriticLearningRate < 0 {
		return errors.New("learning rates cannot be negative")
	}
	if c.Decay < 0 || c.Decay > 1 {
		return errors.Errorf("decay must be in [0, 1], got %v", c.Decay)
	}
	if c.TrainEpisodes < 0 {
		return errors.Errorf("train episodes cannot be negative, got %v",
			c.TrainEpisodes)
	}
	if c.CheckpointEvery > 0 && c.ModelName == "" {
		return errors.New("checkpointing requires a model name")
	}
	return nil
}
