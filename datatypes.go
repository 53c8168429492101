package libdnn

import (
	"gorgonia.org/tensor"

	"github.com/ChunHungLiu/libdnn/rbm"
)

// Dataset exposes a host-resident feature matrix (samples × features) and
// the number of samples in it.
type Dataset interface {
	Features() *tensor.Dense
	Len() int
}

// ProgressFn observes pretraining progress; see rbm.ProgressFn.
type ProgressFn = rbm.ProgressFn

// denseData adapts a raw matrix into a Dataset.
type denseData struct {
	x *tensor.Dense
}

func (d denseData) Features() *tensor.Dense { return d.x }
func (d denseData) Len() int                { return d.x.Shape()[0] }

// FromMatrix wraps an in-memory samples × features matrix as a Dataset.
func FromMatrix(x *tensor.Dense) Dataset { return denseData{x: x} }
