package expression

import (
	"sync"
	"testing"
)

func TestStoreEmpty(t *testing.T) {
	state, seq := NewStore().Latest()
	if state != nil {
		t.Errorf("empty store state = %+v, want nil", state)
	}
	if seq != 0 {
		t.Errorf("empty store sequence = %d, want 0", seq)
	}
}

func TestStoreLastWriteWins(t *testing.T) {
	store := NewStore()
	first := &FaceExpressionState{MouthOpen: 0.1}
	second := &FaceExpressionState{MouthOpen: 0.9}

	store.Publish(first)
	store.Publish(second)

	state, seq := store.Latest()
	if state != second {
		t.Errorf("state = %+v, want the last published value", state)
	}
	if seq != 2 {
		t.Errorf("sequence = %d, want 2", seq)
	}
}

func TestStoreNilPublishOverwrites(t *testing.T) {
	store := NewStore()
	store.Publish(&FaceExpressionState{})
	store.Publish(nil)

	state, seq := store.Latest()
	if state != nil {
		t.Error("nil publish did not overwrite the slot")
	}
	if seq != 2 {
		t.Errorf("sequence = %d, want 2", seq)
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	done := make(chan struct{})

	// Many readers polling while the single writer publishes.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var lastSeq uint64
			for {
				select {
				case <-done:
					return
				default:
				}
				state, seq := store.Latest()
				if seq < lastSeq {
					t.Error("sequence went backwards")
					return
				}
				lastSeq = seq
				if state != nil && (state.MouthOpen < 0 || state.MouthOpen > 1) {
					t.Error("read a torn state")
					return
				}
			}
		}()
	}

	for i := 0; i < 1000; i++ {
		if i%10 == 9 {
			store.Publish(nil)
			continue
		}
		store.Publish(&FaceExpressionState{MouthOpen: float64(i%11) / 10})
	}
	close(done)
	wg.Wait()

	_, seq := store.Latest()
	if seq != 1000 {
		t.Errorf("sequence = %d, want 1000", seq)
	}
}
