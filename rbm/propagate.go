package rbm

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Up computes the hidden-layer activations for a visible batch that already
// carries its bias column: hidden = visible × W. Bernoulli-Bernoulli layers
// squash the pre-activation through a sigmoid; Gaussian-Bernoulli layers
// leave it linear. The result's last column is the bias unit, reset to 1.
func Up(w, visible *tensor.Dense, k Kind) (*tensor.Dense, error) {
	h, err := visible.MatMul(w)
	if err != nil {
		return nil, errors.Wrap(err, "up-propagate")
	}
	if !k.traits().linearUp {
		if _, err = h.Apply(sigmoid, tensor.UseUnsafe()); err != nil {
			return nil, errors.Wrap(err, "up-propagate sigmoid")
		}
	}
	setBias(h)
	return h, nil
}

// Down reconstructs the visible batch from hidden activations:
// visible = sigmoid(hidden × Wᵗ). The reconstruction is always treated as
// probabilities in [0, 1], so the sigmoid applies for every Kind; only the
// up direction varies. The bias column of the result is reset to 1.
func Down(w, hidden *tensor.Dense, k Kind) (*tensor.Dense, error) {
	wt, err := transposed(w)
	if err != nil {
		return nil, err
	}
	v, err := hidden.MatMul(wt)
	if err != nil {
		return nil, errors.Wrap(err, "down-propagate")
	}
	if _, err = v.Apply(sigmoid, tensor.UseUnsafe()); err != nil {
		return nil, errors.Wrap(err, "down-propagate sigmoid")
	}
	setBias(v)
	return v, nil
}
