package pipeline

import (
	"context"
	"runtime"
	"sync"
)

// workerCount returns the configured worker count or one per CPU.
func workerCount(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// drainParallel executes fn for indices [0,n) on a pool of workers and hands
// each result to yield in completion order, from the calling goroutine only.
// Dispatch stops when ctx is done or yield returns false; work already handed
// to a worker is still drained before returning. The returned error is
// ctx.Err() when dispatch stopped because of the context.
func drainParallel[T any](ctx context.Context, n, workers int, fn func(int) T, yield func(T) bool) error {
	if n == 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	jobs := make(chan int)
	results := make(chan T)
	stop := make(chan struct{})
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range jobs {
			results <- fn(idx)
		}
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker()
	}

	var ctxErr error
	dispatched := make(chan int, 1)
	go func() {
		sent := 0
		defer func() {
			close(jobs)
			dispatched <- sent
		}()
		for i := 0; i < n; i++ {
			select {
			case jobs <- i:
				sent++
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	consuming := true
	for res := range results {
		if !consuming {
			continue
		}
		if !yield(res) {
			consuming = false
			close(stop)
		}
	}
	if sent := <-dispatched; sent < n && consuming {
		ctxErr = ctx.Err()
	}
	return ctxErr
}
