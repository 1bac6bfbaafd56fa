package experiment

import "github.com/pkg/errors"

// Config bundles the options of an evaluation run. A Config is fixed
// before the run starts and never mutated during it.
type Config struct {
	// Episodes is the number of episodes to run
	Episodes int

	// Render determines whether episodes are rendered, provided the
	// environment can render itself
	Render bool

	// RenderAfter is the first episode index at which rendering
	// starts. Episodes before it are never rendered, even when Render
	// is set.
	RenderAfter int
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	if c.Episodes < 0 {
		return errors.Errorf("config: episodes cannot be negative, got %v",
			c.Episodes)
	}
	return nil
}
