package tracker_test

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/gorlkit/gorl/experiment/tracker"
	ts "github.com/gorlkit/gorl/timestep"
)

// episode feeds a tracker one full episode of unit-discount timesteps
// with the given per-step rewards
func episode(tr tracker.Tracker, rewards []float64) {
	obs := mat.NewVecDense(1, nil)
	tr.Track(ts.New(ts.First, 0, 1, obs, 0))

	for i, r := range rewards {
		stepType := ts.Mid
		if i == len(rewards)-1 {
			stepType = ts.Last
		}
		tr.Track(ts.New(stepType, r, 1, obs, i+1))
	}
}

func TestReturnAccumulatesPerEpisode(t *testing.T) {
	r := tracker.NewReturn(filepath.Join(t.TempDir(), "data.bin"))

	episode(r, []float64{1, 2, 3})
	episode(r, []float64{-1, -1})

	returns := r.Returns()
	if len(returns) != 2 {
		t.Fatalf("recorded %v returns, want 2", len(returns))
	}
	if returns[0] != 6 {
		t.Errorf("first episodic return is %v, want 6", returns[0])
	}
	if returns[1] != -2 {
		t.Errorf("second episodic return is %v, want -2", returns[1])
	}
}

// An unfinished final episode is not recorded.
func TestReturnIgnoresUnfinishedEpisode(t *testing.T) {
	r := tracker.NewReturn(filepath.Join(t.TempDir(), "data.bin"))

	episode(r, []float64{5})

	obs := mat.NewVecDense(1, nil)
	r.Track(ts.New(ts.First, 0, 1, obs, 0))
	r.Track(ts.New(ts.Mid, 100, 1, obs, 1))

	returns := r.Returns()
	if len(returns) != 1 || returns[0] != 5 {
		t.Errorf("recorded returns %v, want only the finished episode [5]",
			returns)
	}
}

func TestReturnSaveLoadRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "data.bin")
	r := tracker.NewReturn(filename)

	episode(r, []float64{1, 1})
	episode(r, []float64{2})

	if err := r.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := tracker.LoadData(filename)
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if len(data) != 2 || data[0] != 2 || data[1] != 2 {
		t.Errorf("loaded %v, want [2 2]", data)
	}
}

func TestLoadDataMissingFile(t *testing.T) {
	if _, err := tracker.LoadData(filepath.Join(t.TempDir(),
		"none.bin")); err == nil {
		t.Error("loading missing data should error")
	}
}
