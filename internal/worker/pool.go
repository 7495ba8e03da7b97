package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task is one input with the outcome of processing it.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
	// Done is false when the input was never processed because ctx ended first.
	Done bool
}

// ProcessFunc is the function signature for processing a single task.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool is a generic worker pool with configurable concurrency.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a new worker pool.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Execute runs all inputs through the pool and returns one Task per input, in input order.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	results := make([]Task[T, R], len(inputs))
	for i := range inputs {
		results[i].Input = inputs[i]
	}
	inputCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				result, err := p.process(ctx, inputs[idx])
				results[idx] = Task[T, R]{
					Input:  inputs[idx],
					Result: result,
					Err:    err,
					Done:   true,
				}
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
			}
		}(w)
	}

send:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break send
		case inputCh <- i:
		}
	}
	close(inputCh)

	wg.Wait()
	return results
}

// Failed counts tasks that returned an error or were not run.
func Failed[T any, R any](tasks []Task[T, R]) int {
	n := 0
	for _, t := range tasks {
		if t.Err != nil || !t.Done {
			n++
		}
	}
	return n
}

// Batch splits items into consecutive slices of at most batchSize.
func Batch[T any](items []T, batchSize int) [][]T {
	if batchSize <= 0 {
		batchSize = 1
	}
	var batches [][]T
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}
