package materialize

import (
	"context"
	"runtime"
	"sync"

	"github.com/gofhir/elementmodel/element"
	"github.com/gofhir/elementmodel/schema"
)

// BatchResult is the outcome of materializing one root in a batch.
type BatchResult struct {
	// Index is the position of the root in the input slice.
	Index int

	// Instance is the materialized instance, nil when Err is set.
	Instance *schema.Instance

	// Err is the materialization error, if any.
	Err error
}

// MaterializeBatch materializes several roots concurrently using a bounded
// worker pool. Each root materializes into its own fresh instance, which
// is the concurrency-safe mode of the materializer. Results are returned
// in input order. If workers <= 0, runtime.NumCPU() workers are used.
//
// Roots not yet started when ctx is canceled report ctx.Err().
func (m *Materializer) MaterializeBatch(ctx context.Context, roots []element.Node, workers int) []BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(roots) {
		workers = len(roots)
	}

	results := make([]BatchResult, len(roots))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				inst, err := m.Materialize(roots[i])
				results[i] = BatchResult{Index: i, Instance: inst, Err: err}
			}
		}()
	}

	for i := range roots {
		select {
		case <-ctx.Done():
			results[i] = BatchResult{Index: i, Err: ctx.Err()}
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
