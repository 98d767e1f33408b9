package handlers

import (
	"sync"
	"testing"

	"github.com/vocably-dev/vocably/internal/ai"
)

// Concurrent handlers share one AI client; construction must be safe under
// simultaneous first calls.
func TestGenerationClientSharedAcrossGoroutines(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	const goroutines = 8

	clients := make([]*ai.Gemini, goroutines)
	errs := make([]error, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], errs[i] = generationClient()
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: unexpected error: %v", i, errs[i])
		}
		if clients[i] == nil {
			t.Fatalf("goroutine %d: got nil client", i)
		}
		if clients[i] != clients[0] {
			t.Fatalf("goroutine %d: got a different client instance", i)
		}
	}
}
