package pool

import (
	"context"
	"sync"
)

// WorkerFunc defines the function signature for a worker that processes an
// item and produces a result.
type WorkerFunc[T, R any] func(ctx context.Context, item T) (R, error)

type task[T any] struct {
	index int
	item  T
}

// Map executes a worker pool over a slice of items. Results are returned in
// input order; the error slice collects every worker error. When the
// context is cancelled, unprocessed items are skipped and their results are
// left as zero values.
func Map[T, R any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T, R]) ([]R, []error) {
	var wg sync.WaitGroup
	taskChan := make(chan task[T], numWorkers)
	errChan := make(chan error, len(items))
	results := make([]R, len(items))

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tk := range taskChan {
				select {
				case <-ctx.Done():
					return
				default:
					result, err := workerFunc(ctx, tk.item)
					if err != nil {
						errChan <- err
						continue
					}
					results[tk.index] = result
				}
			}
		}()
	}

OUT:
	for i, item := range items {
		select {
		case taskChan <- task[T]{index: i, item: item}:
		case <-ctx.Done():
			// Stop feeding tasks if the context is cancelled
			break OUT
		}
	}
	close(taskChan)

	wg.Wait()
	close(errChan)

	var allErrors []error
	for err := range errChan {
		allErrors = append(allErrors, err)
	}
	return results, allErrors
}
