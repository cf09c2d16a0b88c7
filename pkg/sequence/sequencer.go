package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic sequence IDs. Books use it to
// stamp order arrival and trade execution order.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer starting after the given value.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence ID.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
