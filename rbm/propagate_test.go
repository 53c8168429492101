package rbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func checkBias(t *testing.T, m *tensor.Dense) {
	t.Helper()
	data := m.Data().([]float32)
	cols := m.Shape()[1]
	for r := 0; r < m.Shape()[0]; r++ {
		if data[r*cols+cols-1] != 1 {
			t.Fatalf("row %d: bias is %v, want exactly 1", r, data[r*cols+cols-1])
		}
	}
}

func TestUpShapesAndBias(t *testing.T) {
	// 2 visible units + bias → 3 hidden units + bias.
	w := tensor.New(tensor.WithShape(3, 4), tensor.WithBacking(make([]float32, 12)))
	v := tensor.New(tensor.WithShape(5, 3), tensor.WithBacking([]float32{
		0, 1, 1,
		1, 0, 1,
		1, 1, 1,
		0, 0, 1,
		1, 1, 1,
	}))

	for _, kind := range []Kind{GaussianBernoulli, BernoulliBernoulli} {
		h, err := Up(w, v, kind)
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{5, 4}, h.Shape())
		checkBias(t, h)
	}
}

func TestUpActivation(t *testing.T) {
	assert := assert.New(t)
	// Zero weights: the pre-activation is zero everywhere.
	w := tensor.New(tensor.WithShape(3, 3), tensor.WithBacking(make([]float32, 9)))
	v := tensor.New(tensor.WithShape(2, 3), tensor.WithBacking([]float32{1, 2, 1, 3, 4, 1}))

	// Bernoulli visible units squash through the sigmoid.
	h, err := Up(w, v, BernoulliBernoulli)
	require.NoError(t, err)
	assert.Equal(float32(0.5), h.Data().([]float32)[0])

	// Gaussian visible units feed a linear pre-activation.
	h, err = Up(w, v, GaussianBernoulli)
	require.NoError(t, err)
	assert.Equal(float32(0), h.Data().([]float32)[0])
}

func TestUpLinearMatchesMatMul(t *testing.T) {
	w := tensor.New(tensor.WithShape(3, 2), tensor.WithBacking([]float32{
		1, 0.5,
		-1, 0.25,
		2, 1,
	}))
	v := tensor.New(tensor.WithShape(1, 3), tensor.WithBacking([]float32{1, 2, 1}))

	h, err := Up(w, v, GaussianBernoulli)
	require.NoError(t, err)

	// 1×1 + 2×(−1) + 1×2 = 1; last column is the bias, not the product.
	got := h.Data().([]float32)
	assert.Equal(t, float32(1), got[0])
	assert.Equal(t, float32(1), got[1])
}

func TestDownAlwaysSigmoid(t *testing.T) {
	// Reconstruction is treated as probabilities for every Kind, so even
	// a Gaussian layer's down pass lands in (0, 1).
	w := tensor.New(tensor.WithShape(3, 3), tensor.WithBacking([]float32{
		2, -1, 0,
		-3, 1, 0,
		0.5, 0.5, 1,
	}))
	h := tensor.New(tensor.WithShape(4, 3), tensor.WithBacking([]float32{
		1, 0, 1,
		0, 1, 1,
		1, 1, 1,
		0.5, 0.25, 1,
	}))

	for _, kind := range []Kind{GaussianBernoulli, BernoulliBernoulli} {
		v, err := Down(w, h, kind)
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{4, 3}, v.Shape())
		checkBias(t, v)

		data := v.Data().([]float32)
		cols := v.Shape()[1]
		for i, x := range data {
			if i%cols == cols-1 {
				continue
			}
			if x <= 0 || x >= 1 {
				t.Fatalf("%v: reconstruction entry %d = %v, want (0, 1)", kind, i, x)
			}
		}
	}
}

func TestBatchWithBias(t *testing.T) {
	data := tensor.New(tensor.WithShape(4, 2), tensor.WithBacking([]float32{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	}))

	b := BatchWithBias(data, 1, 2)
	assert.Equal(t, tensor.Shape{2, 3}, b.Shape())
	assert.Equal(t, []float32{3, 4, 1, 5, 6, 1}, b.Data().([]float32))
}
