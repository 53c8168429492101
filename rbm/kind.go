package rbm

// Kind names an RBM by its visible-unit activation family. Hidden units are
// always treated as Bernoulli units; only the visible side varies.
type Kind byte

const (
	// GaussianBernoulli has linear visible units perturbed with unit
	// Gaussian noise. Only valid as the first layer of a stack.
	GaussianBernoulli Kind = iota
	// BernoulliBernoulli has binary visible units; inputs are interpreted
	// as Bernoulli probabilities and must lie in [0, 1].
	BernoulliBernoulli
)

func (k Kind) String() string {
	switch k {
	case GaussianBernoulli:
		return "Gaussian-Bernoulli"
	case BernoulliBernoulli:
		return "Bernoulli-Bernoulli"
	}
	return "Unknown"
}

// traits is the capability set of a Kind, resolved once per layer rather
// than re-branched on every call.
type traits struct {
	bounded  bool    // visible data must lie in [0, 1]
	lrScale  float32 // applied to the configured learning rate
	linearUp bool    // skip the sigmoid on the up-propagated pre-activation
}

func (k Kind) traits() traits {
	if k == GaussianBernoulli {
		// Gaussian visible units are far more sensitive to step size,
		// hence the 1/100 correction on the learning rate.
		return traits{lrScale: 0.01, linearUp: true}
	}
	return traits{bounded: true, lrScale: 1}
}
