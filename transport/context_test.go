package transport

import (
	"sync"
	"testing"
)

func TestAcquire_Singleton(t *testing.T) {
	c, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if c == nil {
		t.Fatal("Acquire returned nil context")
	}
	if c.Config() == nil {
		t.Fatal("context has no config")
	}
}

func TestAcquire_ConcurrentIdentity(t *testing.T) {
	const n = 8
	results := make([]*Context, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := Acquire()
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			results[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("Acquire returned distinct contexts: %p vs %p", results[i], results[0])
		}
	}
}

func TestContext_CloseIdempotent(t *testing.T) {
	c, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
