package tableparser

import (
	"context"
	"sync"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// DefaultBatchWorkers is the worker pool size used when the caller passes 0.
const DefaultBatchWorkers = 4

// BatchResult pairs an input path with its parse outcome.
type BatchResult struct {
	// Path is the input file.
	Path string `json:"path"`
	// Result is the per-file outcome; failures are isolated per file.
	Result models.ParseResult `json:"result"`
}

// ParseBatch processes independent files on a fixed-size worker pool. Each
// worker owns its own parser (and therefore its own overlay cache), so no
// state is shared across workers. One file's failure never aborts the batch;
// canceling the context stops dispatching further files, and results keep
// the input order.
func ParseBatch(ctx context.Context, paths []string, opts ParseOptions, workers int) []BatchResult {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]BatchResult, len(paths))
	done := make([]bool, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := New()
			for i := range jobs {
				results[i] = BatchResult{
					Path:   paths[i],
					Result: parser.Parse(paths[i], opts),
				}
				done[i] = true
			}
		}()
	}

dispatch:
	for i := range paths {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if !done[i] {
			results[i] = BatchResult{
				Path:   paths[i],
				Result: models.ParseResult{Error: ctx.Err().Error()},
			}
		}
	}
	return results
}
