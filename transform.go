package libdnn

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/ChunHungLiu/libdnn/batches"
	"github.com/ChunHungLiu/libdnn/rbm"
)

// Transform pushes the whole dataset through one layer's learned weights:
// a batched forward pass with sigmoid activation and the bias unit
// appended to each input batch. The activations come back as a
// host-resident samples × hiddenDim matrix, ready to be the next layer's
// training input; its bias column is not carried over, since the next
// trainer appends its own.
func Transform(w, data *tensor.Dense, batchSize int) (*tensor.Dense, error) {
	n := data.Shape()[0]
	hidden := w.Shape()[1] - 1
	out := make([]float32, n*hidden)

	part := batches.New(batchSize, n)
	for win, ok := part.Next(); ok; win, ok = part.Next() {
		// Per-batch scratch is scoped to this window: built, computed
		// on, copied out, then dropped on every exit path.
		v := rbm.BatchWithBias(data, win.Offset, win.Width)
		h, err := rbm.Up(w, v, rbm.BernoulliBernoulli)
		if err != nil {
			return nil, errors.Wrapf(err, "forward pass at sample %d", win.Offset)
		}

		src := h.Data().([]float32)
		for r := 0; r < win.Width; r++ {
			copy(out[(win.Offset+r)*hidden:(win.Offset+r+1)*hidden], src[r*(hidden+1):r*(hidden+1)+hidden])
		}
	}

	return tensor.New(tensor.WithShape(n, hidden), tensor.WithBacking(out)), nil
}
