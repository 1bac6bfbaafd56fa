// Package tracker implements Trackers, which cache and save data
// generated while running an agent in an environment
package tracker

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	ts "github.com/gorlkit/gorl/timestep"
)

// Tracker caches run data in RAM and saves the cached data to disk
// once the run has finished
type Tracker interface {
	// Track caches the data of a single timestep
	Track(t ts.TimeStep)

	// Save writes all cached data to disk
	Save() error
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "loadData: could not open data file")
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []float64
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(err, "loadData: could not decode data")
	}

	return data, nil
}
