package rbm

import (
	"sync"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Sample applies the Kind's stochastic transform to every entry of m, in
// place, then resets the bias column to 1:
//
//	Gaussian-Bernoulli:  x ← x + N(0, 1)
//	Bernoulli-Bernoulli: x ← 1 if x ≥ U(0, 1), else 0
//
// Work is dispatched as one worker per pool slot; each worker strides over
// every cell whose intra-tile coordinate addresses its slot. Cells in
// different tiles that share an intra-tile coordinate therefore consume
// values from the same generator stream, so their sequences are correlated
// across tiles and never fully independent. The pool is bounded on
// purpose; callers tune the correlation through the pool size rather than
// expecting i.i.d. draws over the whole matrix. Given the same pool seed
// and matrix shape, the output is bit-for-bit reproducible.
//
// The pool carries no locks, so a Sample call must not run concurrently
// with another Sample on the same pool.
func Sample(p *StatePool, m *tensor.Dense, k Kind) error {
	if p == nil {
		return errors.New("sample: nil state pool")
	}
	shp := m.Shape()
	if len(shp) != 2 {
		return errors.Errorf("sample: want a matrix, got shape %v", shp)
	}
	if dt := m.Dtype(); dt != tensor.Float32 {
		return errors.Errorf("sample: want a Float32 matrix, got %v", dt)
	}
	rows, cols := shp[0], shp[1]
	data := m.Data().([]float32)

	tileH, tileW := p.size, p.size
	if rows < tileH {
		tileH = rows
	}
	if cols < tileW {
		tileW = cols
	}

	var wg sync.WaitGroup
	for ty := 0; ty < tileH; ty++ {
		for tx := 0; tx < tileW; tx++ {
			wg.Add(1)
			go func(ty, tx int) {
				defer wg.Done()
				s := p.states[ty*p.size+tx]
				for i := ty; i < rows; i += p.size {
					row := data[i*cols : (i+1)*cols]
					for j := tx; j < cols; j += p.size {
						if k == GaussianBernoulli {
							row[j] += float32(s.gauss.Gaussian(0, 1))
						} else if float64(row[j]) >= s.unif.Float64() {
							row[j] = 1
						} else {
							row[j] = 0
						}
					}
				}
			}(ty, tx)
		}
	}
	wg.Wait()

	setBias(m)
	return nil
}
