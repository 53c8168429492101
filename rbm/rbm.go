// Package rbm trains single Restricted Boltzmann Machines with one-step
// contrastive divergence (CD-1). A Machine owns its weight matrix for the
// duration of Train and hands ownership to the caller on return.
package rbm

import (
	"fmt"
	"math"
	"time"

	"github.com/ChunHungLiu/libdnn/batches"
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// Machine is a single-RBM trainer.
type Machine struct {
	Config

	pool *StatePool
	errs []float64 // per-epoch reconstruction errors, append-only

	epochs   int
	avgEpoch time.Duration
}

// New builds a Machine from conf. A nil conf.Pool selects the shared
// process-wide state pool.
func New(conf Config) *Machine {
	if !conf.IsValid() {
		panic("rbm: Config is not valid. Unable to proceed")
	}
	pool := conf.Pool
	if pool == nil {
		pool = AcquirePool(conf.Seed, conf.PoolSize)
	}
	return &Machine{
		Config: conf,
		pool:   pool,
	}
}

// Train runs the CD-1 epoch/mini-batch loop over data (samples × features,
// host-resident, no bias column) and returns the learned weight matrix of
// shape (features+1) × (HiddenDim+1). The extra row and column hold the
// bias terms. Training runs at least MinEpochs and at most MaxEpochs
// epochs, stopping early once the error trajectory's local slope falls
// under SlopeThreshold relative to its initial slope.
func (m *Machine) Train(data *tensor.Dense) (*tensor.Dense, error) {
	shp := data.Shape()
	if len(shp) != 2 {
		return nil, errors.Errorf("rbm: want a samples × features matrix, got shape %v", shp)
	}
	n, visible := shp[0], shp[1]
	if n == 0 || visible == 0 {
		return nil, errors.Errorf("rbm: cannot train on an empty %d × %d dataset", n, visible)
	}
	if dt := data.Dtype(); dt != tensor.Float32 {
		return nil, errors.Errorf("rbm: want Float32 training data, got %v", dt)
	}

	// A Machine may be reused; the trajectory and epoch accounting belong
	// to one run only.
	m.errs = nil
	m.epochs = 0
	m.avgEpoch = 0

	tr := m.Kind.traits()

	// The bounds precondition must fail before any weight update.
	if tr.bounded {
		for _, v := range data.Data().([]float32) {
			if v < 0 || v > 1 {
				return nil, errors.Errorf("rbm: %v training data must lie in [0, 1], found %v", m.Kind, v)
			}
		}
	}

	w := m.initWeights(visible)
	lr := float32(m.LearningRate) * tr.lrScale

	stop := plateau{
		window:    m.SlopeWindow,
		min:       m.MinEpochs,
		max:       m.MaxEpochs,
		threshold: m.SlopeThreshold,
	}

	start := time.Now()
	for epoch := 1; epoch <= m.MaxEpochs; epoch++ {
		var total float64
		part := batches.New(m.BatchSize, n)
		for win, ok := part.Next(); ok; win, ok = part.Next() {
			e, err := m.step(w, data, win, lr)
			if err != nil {
				return nil, errors.Wrapf(err, "epoch %d batch at %d", epoch, win.Offset)
			}
			total += e
		}
		m.errs = append(m.errs, math.Sqrt(total)/float64(n))
		m.epochs = epoch

		m.report(float64(epoch)/float64(m.MaxEpochs),
			fmt.Sprintf("%v layer: epoch %d, error %.6f", m.Kind, epoch, m.errs[epoch-1]))
		if stop.done(m.errs) {
			break
		}
	}
	m.avgEpoch = time.Since(start) / time.Duration(m.epochs)

	// The final report says 1.0 even when the run hit MaxEpochs without
	// the slope ratio ever crossing the threshold.
	m.report(1.0, fmt.Sprintf("%v layer: done after %d epochs, %v/epoch, projected floor %.6f",
		m.Kind, m.epochs, m.avgEpoch.Round(time.Millisecond), Forecast(m.errs, m.SlopeWindow, m.MaxEpochs)))
	return w, nil
}

// step performs one CD-1 update on the batch window win and returns the
// batch's squared reconstruction error.
func (m *Machine) step(w, data *tensor.Dense, win batches.Window, lr float32) (float64, error) {
	v1 := BatchWithBias(data, win.Offset, win.Width)

	h1, err := Up(w, v1, m.Kind)
	if err != nil {
		return 0, err
	}

	// Positive statistics come from the data-driven activations, before
	// h1 is perturbed in place.
	v1t, err := transposed(v1)
	if err != nil {
		return 0, err
	}
	pos, err := v1t.MatMul(h1)
	if err != nil {
		return 0, errors.Wrap(err, "positive statistics")
	}

	if err = Sample(m.pool, h1, m.Kind); err != nil {
		return 0, err
	}

	v2, err := Down(w, h1, m.Kind)
	if err != nil {
		return 0, err
	}
	h2, err := Up(w, v2, m.Kind)
	if err != nil {
		return 0, err
	}
	v2t, err := transposed(v2)
	if err != nil {
		return 0, err
	}
	neg, err := v2t.MatMul(h2)
	if err != nil {
		return 0, errors.Wrap(err, "negative statistics")
	}

	// W += lr/batch × (positive − negative). pos is ours to scribble on.
	delta := pos.Data().([]float32)
	vecf32.Sub(delta, neg.Data().([]float32))
	vecf32.Scale(delta, lr/float32(win.Width))
	vecf32.Add(w.Data().([]float32), delta)

	return sqDiff(v1.Data().([]float32), v2.Data().([]float32)), nil
}

// initWeights draws the initial (visible+1) × (HiddenDim+1) weights from a
// zero-mean normal with standard deviation 0.1 / cols.
func (m *Machine) initWeights(visible int) *tensor.Dense {
	rows, cols := visible+1, m.HiddenDim+1
	backing := G.Gaussian(0, 0.1/float64(cols))(tensor.Float32, rows, cols)
	return tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))
}

func (m *Machine) report(frac float64, status string) {
	if m.Progress != nil {
		m.Progress(frac, status)
	}
}

// Errors returns the per-epoch reconstruction error trajectory.
func (m *Machine) Errors() []float64 { return m.errs }

// Epochs returns how many epochs the last Train call ran.
func (m *Machine) Epochs() int { return m.epochs }

// EpochDuration returns the average wall time per epoch of the last run.
func (m *Machine) EpochDuration() time.Duration { return m.avgEpoch }
