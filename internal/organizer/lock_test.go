package organizer

import (
	"sync"
	"testing"
)

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex()

	var (
		wg      sync.WaitGroup
		counter = map[string]*int{"a": new(int), "b": new(int)}
	)
	for i := 0; i < 50; i++ {
		for _, key := range []string{"a", "b"} {
			key := key
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := k.Lock(key)
				defer unlock()
				*counter[key]++
			}()
		}
	}
	wg.Wait()

	if *counter["a"] != 50 || *counter["b"] != 50 {
		t.Errorf("counter = %d/%d, want 50 each", *counter["a"], *counter["b"])
	}
	if len(k.locks) != 0 {
		t.Errorf("locks not released: %d left", len(k.locks))
	}
}
