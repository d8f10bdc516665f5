package expression

import "sync/atomic"

// Store is the single-slot handoff between the pipeline and the
// rendering consumer. It holds only the most recent result: publishing
// overwrites, readers never block, and there is no history or
// acknowledgment. Exactly one goroutine writes; any number read.
type Store struct {
	state atomic.Pointer[FaceExpressionState]
	seq   atomic.Uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the slot with the given state. nil means the frame
// had no face.
func (s *Store) Publish(state *FaceExpressionState) {
	s.state.Store(state)
	s.seq.Add(1)
}

// Latest returns the most recently published state (nil if none or no
// face) and a sequence number that increments on every publish, so
// polling readers can tell fresh results from stale ones.
func (s *Store) Latest() (*FaceExpressionState, uint64) {
	seq := s.seq.Load()
	return s.state.Load(), seq
}
