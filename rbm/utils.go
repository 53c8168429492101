package rbm

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// setBias forces the last column of m to exactly 1. Every propagation and
// sampling step finishes with this; a bias column that is not 1.0 is a bug.
func setBias(m *tensor.Dense) {
	data := m.Data().([]float32)
	cols := m.Shape()[1]
	for i := cols - 1; i < len(data); i += cols {
		data[i] = 1
	}
}

// BatchWithBias copies the row window [off, off+width) of data into a fresh
// width×(cols+1) matrix whose extra column is the constant bias unit.
func BatchWithBias(data *tensor.Dense, off, width int) *tensor.Dense {
	cols := data.Shape()[1]
	src := data.Data().([]float32)
	backing := make([]float32, width*(cols+1))
	for r := 0; r < width; r++ {
		copy(backing[r*(cols+1):], src[(off+r)*cols:(off+r+1)*cols])
		backing[r*(cols+1)+cols] = 1
	}
	return tensor.New(tensor.WithShape(width, cols+1), tensor.WithBacking(backing))
}

func transposed(a *tensor.Dense) (*tensor.Dense, error) {
	t, err := tensor.Transpose(a, 1, 0)
	if err != nil {
		return nil, errors.Wrap(err, "transpose")
	}
	return t.(*tensor.Dense), nil
}

// sqDiff accumulates the squared Euclidean distance between two equally
// shaped buffers in float64, so long epochs do not lose precision.
func sqDiff(a, b []float32) float64 {
	var total float64
	for i := range a {
		d := float64(a[i] - b[i])
		total += d * d
	}
	return total
}

// Finite reports whether every entry of m is a finite number.
func Finite(m *tensor.Dense) bool {
	for _, v := range m.Data().([]float32) {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}
