// Package libdnn performs unsupervised layer-wise pretraining of stacked
// Restricted Boltzmann Machines. Each layer is trained with one-step
// contrastive divergence, then the whole dataset is pushed through the
// learned weights to become the next layer's input. The resulting weight
// matrices initialize a deeper network.
package libdnn

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/ChunHungLiu/libdnn/rbm"
)

// Config describes a full pretraining stack.
type Config struct {
	// LayerDims lists every layer width, input first. At least two
	// entries.
	LayerDims []int
	// FirstLayerKind selects the visible-unit family of layer 0. Every
	// deeper layer sees bounded [0, 1] representations and is forced to
	// Bernoulli-Bernoulli regardless.
	FirstLayerKind rbm.Kind

	LearningRate   float64
	SlopeThreshold float64

	BatchSize      int // trainer mini-batch
	TransformBatch int // full-dataset forward pass batch

	// Seed and PoolSize configure the sampler's state pool. Pool, when
	// non-nil, overrides both with an explicitly constructed pool.
	Seed     int64
	PoolSize int
	Pool     *rbm.StatePool

	Progress ProgressFn
}

// DefaultConf returns the stock stack configuration for the given layer
// dimensions.
func DefaultConf(layerDims ...int) Config {
	return Config{
		LayerDims:      layerDims,
		FirstLayerKind: rbm.BernoulliBernoulli,
		LearningRate:   0.1,
		SlopeThreshold: 0.05,
		BatchSize:      1024,
		TransformBatch: 2048,
		PoolSize:       rbm.DefaultPoolSize,
	}
}

func (conf Config) IsValid() bool {
	return len(conf.LayerDims) >= 2 &&
		conf.LearningRate > 0 &&
		conf.SlopeThreshold > 0 &&
		conf.BatchSize >= 1 &&
		conf.TransformBatch >= 1 &&
		(conf.FirstLayerKind == rbm.GaussianBernoulli || conf.FirstLayerKind == rbm.BernoulliBernoulli)
}

// Stack is the result of layer-wise pretraining: one weight matrix per
// layer, in order, plus the Kind each layer was trained with.
type Stack struct {
	Config

	Weights []*tensor.Dense
	Kinds   []rbm.Kind

	pool *rbm.StatePool
}

// New builds a Stack pretrainer from conf.
func New(conf Config) *Stack {
	if !conf.IsValid() {
		panic("libdnn: Config is not valid. Unable to proceed")
	}
	pool := conf.Pool
	if pool == nil {
		pool = rbm.AcquirePool(conf.Seed, conf.PoolSize)
	}
	return &Stack{
		Config: conf,
		pool:   pool,
	}
}

// Pretrain trains one RBM per layer pair of LayerDims, feeding each
// layer's transformed dataset to the next. On success s.Weights holds
// len(LayerDims)-1 matrices; weight i has shape
// (LayerDims[i]+1) × (LayerDims[i+1]+1). Any failure aborts the run with
// no partial weights.
func (s *Stack) Pretrain(ds Dataset) error {
	layers := len(s.LayerDims) - 1
	input := ds.Features()
	if got := input.Shape()[1]; got != s.LayerDims[0] {
		return errors.Errorf("libdnn: dataset has %d features, layer 0 wants %d", got, s.LayerDims[0])
	}

	weights := make([]*tensor.Dense, 0, layers)
	kinds := make([]rbm.Kind, 0, layers)
	for i := 0; i < layers; i++ {
		kind := s.FirstLayerKind
		if i > 0 {
			kind = rbm.BernoulliBernoulli
		}

		conf := rbm.DefaultConf(s.LayerDims[i+1], kind)
		conf.LearningRate = s.LearningRate
		conf.SlopeThreshold = s.SlopeThreshold
		conf.BatchSize = s.BatchSize
		conf.Pool = s.pool
		conf.Progress = s.layerProgress(i, layers)

		w, err := rbm.New(conf).Train(input)
		if err != nil {
			return errors.Wrapf(err, "pretraining layer %d (%d → %d)", i, s.LayerDims[i], s.LayerDims[i+1])
		}
		weights = append(weights, w)
		kinds = append(kinds, kind)

		if i < layers-1 {
			if input, err = Transform(w, input, s.TransformBatch); err != nil {
				return errors.Wrapf(err, "transforming dataset through layer %d", i)
			}
		}
	}

	s.Weights = weights
	s.Kinds = kinds
	return nil
}

// layerProgress scales a single layer's progress reports into the stack's
// overall completion fraction.
func (s *Stack) layerProgress(layer, layers int) rbm.ProgressFn {
	if s.Progress == nil {
		return nil
	}
	return func(frac float64, status string) {
		overall := (float64(layer) + frac) / float64(layers)
		s.Progress(overall, fmt.Sprintf("layer %d/%d: %s", layer+1, layers, status))
	}
}

// Save writes the pretrained weights to filename with gob.
func (s *Stack) Save(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	enc := gob.NewEncoder(f)
	return enc.Encode(s.Weights)
}

// Load reads weights previously written by Save. The configuration is not
// restored; only the weight matrices are.
func (s *Stack) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	if err := dec.Decode(&s.Weights); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
