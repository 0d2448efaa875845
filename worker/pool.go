package worker

import (
	"runtime"
	"sync"
)

// Pool fans row work out over a fixed number of goroutines. The goroutines only live for the
// duration of a single Process call; nothing runs between calls.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given number of workers. If workers is 0 or negative,
// GOMAXPROCS is used.
func NewPool(workers int) Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return Pool{workers: workers}
}

func (p Pool) Workers() int {
	return p.workers
}

// Process calls work once for every index in [0, count) and returns when all calls are done.
// Calls run concurrently and complete in any order; work must only write state owned by its index.
func (p Pool) Process(count int, work func(index int)) {
	if count <= 0 {
		return
	}

	workers := p.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > count {
		workers = count
	}

	todo := make(chan int, count)
	for i := 0; i < count; i++ {
		todo <- i
	}
	close(todo)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range todo {
				work(i)
			}
		}()
	}
	wg.Wait()
}
