// Package batches partitions a sample range into contiguous fixed-size
// windows. The partition is deterministic and identical on every pass:
// windows come out in order, are never reshuffled, and only the final
// window may be narrower than the batch size.
package batches

// Window is one contiguous slice of the partitioned range.
type Window struct {
	Offset, Width int
}

// Partition is a lazy, forward-only iterator over the windows covering
// [0, total). It is restarted by constructing a new one.
type Partition struct {
	batchSize int
	total     int
	next      int
}

// New returns a Partition of total items into windows of at most batchSize.
// A batchSize < 1 yields a single window spanning everything.
func New(batchSize, total int) *Partition {
	if batchSize < 1 {
		batchSize = total
	}
	return &Partition{
		batchSize: batchSize,
		total:     total,
	}
}

// Next returns the following window, or ok == false once the range is
// exhausted.
func (p *Partition) Next() (win Window, ok bool) {
	if p.next >= p.total {
		return Window{}, false
	}
	width := p.batchSize
	if p.next+width > p.total {
		width = p.total - p.next
	}
	win = Window{Offset: p.next, Width: width}
	p.next += width
	return win, true
}

// Count returns how many windows the partition will produce in total.
func (p *Partition) Count() int {
	if p.total <= 0 {
		return 0
	}
	return (p.total + p.batchSize - 1) / p.batchSize
}
