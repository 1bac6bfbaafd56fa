package gaussianac

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"github.com/gorlkit/gorl/checkpoint"
)

// Params exports the agent's weights as checkpoint parameters. The
// tensors back copies of the weight data, so later updates do not
// mutate an in-flight checkpoint.
func (g *GaussianAC) Params() checkpoint.Params {
	criticMat := mat.NewDense(1, g.StateDim, g.criticWeights.RawVector().Data)

	return checkpoint.Params{
		MeanWeightsKey:   tensorOf(g.meanWeights),
		StdWeightsKey:    tensorOf(g.stdWeights),
		CriticWeightsKey: tensorOf(criticMat),
	}
}

// tensorOf copies a dense matrix into a rank-2 tensor
func tensorOf(m *mat.Dense) *tensor.Dense {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		data = append(data, m.RawRowView(i)...)
	}

	return tensor.New(tensor.WithShape(r, c), tensor.WithBacking(data))
}

// denseOf extracts a named parameter from a checkpoint as a dense
// matrix of the expected dimensions
func denseOf(params checkpoint.Params, key string, r, c int) (*mat.Dense,
	error) {
	t, ok := params[key]
	if !ok {
		return nil, errors.Errorf("checkpoint has no parameter %q", key)
	}

	shape := t.Shape()
	if len(shape) != 2 || shape[0] != r || shape[1] != c {
		return nil, errors.Errorf("parameter %q has shape %v, want (%v, %v)",
			key, shape, r, c)
	}

	data, ok := t.Data().([]float64)
	if !ok {
		return nil, errors.Errorf("parameter %q is not float64-backed", key)
	}

	return mat.NewDense(r, c, append([]float64(nil), data...)), nil
}
