package rbm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func binaryData(samples, features int) *tensor.Dense {
	backing := make([]float32, samples*features)
	for i := range backing {
		backing[i] = float32((i / 3) % 2)
	}
	return tensor.New(tensor.WithShape(samples, features), tensor.WithBacking(backing))
}

func testConf(hidden int, kind Kind) Config {
	conf := DefaultConf(hidden, kind)
	conf.BatchSize = 4
	conf.Pool = NewStatePool(42, 4)
	return conf
}

func TestNewPanicsOnBadConf(t *testing.T) {
	assert.Panics(t, func() { New(Config{}) })

	conf := DefaultConf(0, BernoulliBernoulli)
	assert.Panics(t, func() { New(conf) })
}

func TestTrainPrecondition(t *testing.T) {
	data := binaryData(4, 5)
	data.Data().([]float32)[7] = 1.5

	m := New(testConf(3, BernoulliBernoulli))
	w, err := m.Train(data)
	require.Error(t, err)
	assert.Nil(t, w, "no partial weights after a precondition failure")
	assert.Contains(t, err.Error(), "[0, 1]")
	assert.Zero(t, m.Epochs(), "the bounds check must fire before any training")
}

func TestTrainGaussianSkipsBoundsCheck(t *testing.T) {
	data := binaryData(4, 5)
	data.Data().([]float32)[7] = 1.5

	m := New(testConf(3, GaussianBernoulli))
	w, err := m.Train(data)
	require.NoError(t, err)
	assert.True(t, Finite(w))
}

func TestTrainShapeAndTrajectory(t *testing.T) {
	assert := assert.New(t)
	m := New(testConf(3, BernoulliBernoulli))

	w, err := m.Train(binaryData(4, 5))
	require.NoError(t, err)

	assert.Equal(tensor.Shape{6, 4}, w.Shape(), "weights must be (visible+1) × (hidden+1)")
	assert.True(Finite(w), "training must not diverge to non-finite weights")

	assert.True(m.Epochs() >= 5, "ran %d epochs, minimum is 5", m.Epochs())
	assert.True(m.Epochs() <= 128, "ran %d epochs, maximum is 128", m.Epochs())
	assert.Len(m.Errors(), m.Epochs(), "one error per epoch, append-only")
	assert.NotZero(m.EpochDuration())
}

func TestTrainReuse(t *testing.T) {
	assert := assert.New(t)
	m := New(testConf(3, BernoulliBernoulli))

	_, err := m.Train(binaryData(4, 5))
	require.NoError(t, err)
	first := m.Epochs()

	// A second run starts a fresh trajectory: the stopper must not read
	// the previous run's errors, and the accessors describe the last run
	// only.
	w, err := m.Train(binaryData(4, 5))
	require.NoError(t, err)
	assert.True(Finite(w))
	assert.True(first >= 5 && first <= 128, "first run took %d epochs", first)
	assert.True(m.Epochs() >= 5, "second run stopped at epoch %d, below the floor", m.Epochs())
	assert.True(m.Epochs() <= 128, "second run took %d epochs", m.Epochs())
	assert.Len(m.Errors(), m.Epochs(), "trajectory length must equal the last run's epochs")
}

func TestTrainEmptyData(t *testing.T) {
	m := New(testConf(3, BernoulliBernoulli))

	empty := tensor.New(tensor.WithShape(0, 5), tensor.Of(tensor.Float32))
	w, err := m.Train(empty)
	require.Error(t, err)
	assert.Nil(t, w)
	assert.Contains(t, err.Error(), "empty")

	widthless := tensor.New(tensor.WithShape(4, 0), tensor.Of(tensor.Float32))
	_, err = m.Train(widthless)
	require.Error(t, err)
}

func TestTrainWrongDtype(t *testing.T) {
	m := New(testConf(3, BernoulliBernoulli))

	f64 := tensor.New(tensor.WithShape(4, 5), tensor.Of(tensor.Float64))
	w, err := m.Train(f64)
	require.Error(t, err)
	assert.Nil(t, w)
	assert.Contains(t, err.Error(), "Float32")
}

func TestTrainLastBatchShorter(t *testing.T) {
	// 10 samples with batch 4 leaves a final window of 2.
	m := New(testConf(2, BernoulliBernoulli))
	w, err := m.Train(binaryData(10, 3))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 3}, w.Shape())
}

func TestTrainProgressReports(t *testing.T) {
	var fracs []float64
	var last string

	conf := testConf(3, BernoulliBernoulli)
	conf.Progress = func(frac float64, status string) {
		fracs = append(fracs, frac)
		last = status
	}

	m := New(conf)
	_, err := m.Train(binaryData(4, 5))
	require.NoError(t, err)

	require.NotEmpty(t, fracs)
	for _, f := range fracs {
		if f < 0 || f > 1 {
			t.Fatalf("progress fraction %v out of [0, 1]", f)
		}
	}
	// The final report is always 1.0, threshold reached or not.
	assert.Equal(t, 1.0, fracs[len(fracs)-1])
	assert.True(t, strings.Contains(last, "done"), "final status %q should summarize the run", last)
}
