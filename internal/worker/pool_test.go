package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestExecute(t *testing.T) {
	var calls atomic.Int32
	p := NewPool(3, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		if n == 4 {
			return 0, errors.New("four")
		}
		return n * n, nil
	})

	tasks := p.Execute(context.Background(), []int{1, 2, 3, 4, 5})
	if calls.Load() != 5 {
		t.Errorf("expected 5 calls, got %d", calls.Load())
	}
	for i, task := range tasks {
		if task.Input != i+1 {
			t.Errorf("task %d has input %d", i, task.Input)
		}
		if task.Input == 4 {
			if task.Err == nil {
				t.Error("expected error for 4")
			}
			continue
		}
		if task.Result != task.Input*task.Input {
			t.Errorf("task %d result %d", i, task.Result)
		}
	}
	if Failed(tasks) != 1 {
		t.Errorf("expected 1 failure, got %d", Failed(tasks))
	}
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPool(2, func(context.Context, string) (string, error) { return "ok", nil })
	tasks := p.Execute(ctx, []string{"a", "b", "c"})
	if len(tasks) != 3 {
		t.Fatalf("expected a task per input, got %d", len(tasks))
	}
	// Nothing is guaranteed to run, but whatever did not run is counted as failed.
	for _, task := range tasks {
		if !task.Done && Failed([]Task[string, string]{task}) != 1 {
			t.Error("unprocessed task not counted as failed")
		}
	}
}

func TestBatch(t *testing.T) {
	batches := Batch([]int{1, 2, 3, 4, 5}, 2)
	if len(batches) != 3 || len(batches[2]) != 1 {
		t.Errorf("unexpected batches: %v", batches)
	}
	if got := Batch([]int{1, 2}, 0); len(got) != 2 {
		t.Errorf("non-positive size should fall back to 1, got %v", got)
	}
	if got := Batch[int](nil, 3); got != nil {
		t.Errorf("expected nil for no items, got %v", got)
	}
}
