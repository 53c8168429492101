package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestFromCSV(t *testing.T) {
	assert := assert.New(t)
	d, err := FromCSV(strings.NewReader("0,1,0.5\n1,0,0.25\n"))
	require.NoError(t, err)

	assert.Equal(2, d.Len())
	assert.Equal(3, d.Dims())
	assert.Equal(tensor.Shape{2, 3}, d.Features().Shape())
	assert.Equal([]float32{0, 1, 0.5, 1, 0, 0.25}, d.Features().Data().([]float32))
}

func TestFromCSVBadField(t *testing.T) {
	_, err := FromCSV(strings.NewReader("0,1\nx,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
}

func TestFromCSVEmpty(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFromMatrix(t *testing.T) {
	x := tensor.New(tensor.WithShape(4, 2), tensor.WithBacking(make([]float32, 8)))
	d := FromMatrix(x)
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, 2, d.Dims())
}
