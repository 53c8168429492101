// Package dataset loads dense numeric feature matrices for pretraining.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Dense is a host-resident feature matrix, one sample per row.
type Dense struct {
	x          *tensor.Dense
	rows, cols int
}

// Features returns the underlying samples × features matrix.
func (d *Dense) Features() *tensor.Dense { return d.x }

// Len returns the number of samples.
func (d *Dense) Len() int { return d.rows }

// Dims returns the number of features per sample.
func (d *Dense) Dims() int { return d.cols }

// FromCSV reads a headerless CSV of floats, one sample per record. Every
// record must have the same number of fields.
func FromCSV(r io.Reader) (*Dense, error) {
	cr := csv.NewReader(r)
	var backing []float32
	var rows, cols int
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading csv")
		}
		if cols == 0 {
			cols = len(record)
		}
		for _, field := range record {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "record %d", rows)
			}
			backing = append(backing, float32(v))
		}
		rows++
	}
	if rows == 0 || cols == 0 {
		return nil, errors.New("dataset: no samples")
	}
	return &Dense{
		x:    tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing)),
		rows: rows,
		cols: cols,
	}, nil
}

// Open loads a CSV dataset from a file.
func Open(path string) (*Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return FromCSV(f)
}

// FromMatrix wraps an existing samples × features matrix.
func FromMatrix(x *tensor.Dense) *Dense {
	shp := x.Shape()
	return &Dense{x: x, rows: shp[0], cols: shp[1]}
}
