package runner

import (
	"context"
	"sync"

	"digital.vasic.conformance/pkg/engine"
	"digital.vasic.conformance/pkg/fixture"
)

// parallelResult pairs a result with its original index so
// results can be returned in submission order.
type parallelResult struct {
	index  int
	result *Result
	err    error
}

// runParallel executes fixtures concurrently with a semaphore
// limiting maxConcurrency goroutines. Results are returned in
// the same order as the input fixtures.
func runParallel(
	ctx context.Context,
	r *DefaultRunner,
	fixtures []*fixture.Fixture,
	eng engine.Engine,
	maxConcurrency int,
) ([]*Result, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	sem := make(chan struct{}, maxConcurrency)
	resultsCh := make(chan parallelResult, len(fixtures))

	var wg sync.WaitGroup

	for i, f := range fixtures {
		wg.Add(1)
		go func(idx int, fx *fixture.Fixture) {
			defer wg.Done()

			// Acquire semaphore slot.
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultsCh <- parallelResult{
					index: idx,
					err:   ctx.Err(),
				}
				return
			}

			result, execErr := r.runFixture(ctx, fx, eng)
			resultsCh <- parallelResult{
				index:  idx,
				result: result,
				err:    execErr,
			}
		}(i, f)
	}

	// Close channel after all goroutines complete.
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	// Collect results in submission order.
	ordered := make([]*Result, len(fixtures))
	var firstErr error

	for pr := range resultsCh {
		if pr.err != nil && firstErr == nil {
			firstErr = pr.err
		}
		ordered[pr.index] = pr.result
	}

	// Filter out nil entries if context was cancelled.
	results := make([]*Result, 0, len(fixtures))
	for _, res := range ordered {
		if res != nil {
			results = append(results, res)
		}
	}

	return results, firstErr
}
