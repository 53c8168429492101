package rbm

import (
	"sync"
	"time"

	rng "github.com/leesper/go_rng"
)

// DefaultPoolSize is the edge length of the shared state pool. A pool of
// size n holds n×n generator states, matching an n×n sampling tile.
const DefaultPoolSize = 32

// state is one slot of the pool: a pair of independent generators seeded
// from the same (seed, slot) derivation, one per distribution family.
type state struct {
	gauss *rng.GaussianGenerator
	unif  *rng.UniformGenerator
}

// StatePool is a fixed-size grid of pseudo-random generator states used by
// Sample. Slots are addressed by a worker's position within its tile, so
// cells in different tiles that share an intra-tile coordinate draw from
// the same stream. The pool is never resized and carries no locking:
// sampling calls are strictly sequential at the host level, and concurrent
// Sample calls on one pool are unsupported.
type StatePool struct {
	size   int
	states []state
}

// NewStatePool builds a size×size pool. Every slot is seeded
// deterministically from (seed, slotIndex), so two pools built with the
// same arguments produce identical sampling sequences. A seed of 0 falls
// back to wall-clock time.
func NewStatePool(seed int64, size int) *StatePool {
	if size < 1 {
		size = DefaultPoolSize
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p := &StatePool{
		size:   size,
		states: make([]state, size*size),
	}
	for i := range p.states {
		slot := seed + int64(i)
		p.states[i] = state{
			gauss: rng.NewGaussianGenerator(slot),
			unif:  rng.NewUniformGenerator(slot),
		}
	}
	return p
}

// Size returns the pool's edge length.
func (p *StatePool) Size() int { return p.size }

var (
	sharedPool *StatePool
	sharedOnce sync.Once
)

// AcquirePool returns the process-wide pool, creating it on first call from
// the given seed and size. Later calls return the existing pool and ignore
// both arguments; it lives until process exit. Tests that need a private,
// reproducible pool should use NewStatePool instead.
func AcquirePool(seed int64, size int) *StatePool {
	sharedOnce.Do(func() {
		sharedPool = NewStatePool(seed, size)
	})
	return sharedPool
}
