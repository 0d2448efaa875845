package worker

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewPool_Workers(t *testing.T) {
	if got := NewPool(3).Workers(); got != 3 {
		t.Errorf("NewPool(3).Workers() = %d, want 3", got)
	}
	for _, n := range []int{0, -2} {
		if got, want := NewPool(n).Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewPool(%d).Workers() = %d, want %d", n, got, want)
		}
	}
}

func TestPool_ProcessEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 16} {
		pool := NewPool(workers)
		counts := make([]int32, 100)
		pool.Process(len(counts), func(i int) {
			atomic.AddInt32(&counts[i], 1)
		})
		for i, c := range counts {
			if c != 1 {
				t.Errorf("workers %d: index %d processed %d times, want 1", workers, i, c)
			}
		}
	}
}

func TestPool_ProcessEmpty(t *testing.T) {
	called := false
	NewPool(4).Process(0, func(int) { called = true })
	NewPool(4).Process(-1, func(int) { called = true })
	if called {
		t.Error("Process called work for an empty range")
	}
}

func TestPool_ZeroValue(t *testing.T) {
	var pool Pool
	var total int64
	pool.Process(10, func(i int) {
		atomic.AddInt64(&total, int64(i))
	})
	if total != 45 {
		t.Errorf("zero Pool total = %d, want 45", total)
	}
}

func TestPool_MoreWorkersThanWork(t *testing.T) {
	var calls int32
	NewPool(64).Process(3, func(int) {
		atomic.AddInt32(&calls, 1)
	})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestPool_RunsConcurrently(t *testing.T) {
	// Both calls must be in flight at once for either to finish.
	var started sync.WaitGroup
	started.Add(2)
	NewPool(2).Process(2, func(int) {
		started.Done()
		started.Wait()
	})
}

func TestPool_ReturnsAfterAllWork(t *testing.T) {
	results := make([]int, 50)
	NewPool(4).Process(len(results), func(i int) {
		runtime.Gosched()
		results[i] = i * i
	})
	for i, r := range results {
		if r != i*i {
			t.Fatalf("results[%d] = %d after Process returned, want %d", i, r, i*i)
		}
	}
}
