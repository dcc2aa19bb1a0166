package arena

import (
	"sync"
	"testing"

	scriptbridge "github.com/wippyai/script-bridge"
)

func TestLedger_RetainDequeue(t *testing.T) {
	l := NewLedger()

	if _, ok := l.TryDequeue(); ok {
		t.Fatal("empty ledger returned a buffer")
	}

	l.Retain(scriptbridge.Buffer{Ptr: 1, Len: 1})
	l.Retain(scriptbridge.Buffer{Ptr: 2, Len: 1})
	if l.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", l.Depth())
	}

	seen := map[uintptr]bool{}
	for i := 0; i < 2; i++ {
		b, ok := l.TryDequeue()
		if !ok {
			t.Fatalf("dequeue %d failed", i)
		}
		if seen[b.Ptr] {
			t.Fatalf("buffer %#x surfaced twice", b.Ptr)
		}
		seen[b.Ptr] = true
	}

	if _, ok := l.TryDequeue(); ok {
		t.Fatal("drained ledger returned a buffer")
	}
	if l.Depth() != 0 {
		t.Errorf("Depth = %d after drain", l.Depth())
	}
}

// Concurrent producers and consumers must surface every buffer exactly once.
func TestLedger_Concurrent(t *testing.T) {
	const (
		producers = 8
		perWorker = 1000
	)

	l := NewLedger()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base uintptr) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				l.Retain(scriptbridge.Buffer{Ptr: base + uintptr(i), Len: 1})
			}
		}(uintptr(1 + p*perWorker))
	}

	results := make(chan uintptr, producers*perWorker)
	var cg sync.WaitGroup
	done := make(chan struct{})
	for c := 0; c < 4; c++ {
		cg.Add(1)
		go func() {
			defer cg.Done()
			for {
				if b, ok := l.TryDequeue(); ok {
					results <- b.Ptr
					continue
				}
				select {
				case <-done:
					// Final sweep after producers stop.
					for {
						b, ok := l.TryDequeue()
						if !ok {
							return
						}
						results <- b.Ptr
					}
				default:
				}
			}
		}()
	}

	wg.Wait()
	close(done)
	cg.Wait()
	close(results)

	seen := map[uintptr]bool{}
	for ptr := range results {
		if seen[ptr] {
			t.Fatalf("buffer %#x surfaced twice", ptr)
		}
		seen[ptr] = true
	}
	if len(seen) != producers*perWorker {
		t.Errorf("surfaced %d buffers, want %d", len(seen), producers*perWorker)
	}
}
