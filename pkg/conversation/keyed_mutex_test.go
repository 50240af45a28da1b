package conversation

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("user-1")
			counter++
			km.Unlock("user-1")
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	// Key "b" must not wait on key "a".
	<-done
	km.Unlock("a")
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock("u1")
	km.Unlock("u1")
	km.Lock("u2")
	km.Unlock("u2")

	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.locks) != 0 {
		t.Errorf("locks map has %d entries after all unlocks", len(km.locks))
	}
}
