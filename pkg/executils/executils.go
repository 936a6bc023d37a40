package executils

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

// ParallelExec calls fn for every value. Below parallelThreshold values it
// runs inline; otherwise workers claim step-sized chunks until the slice is
// exhausted or ctx is done. It reports ctx.Err() on cancellation.
func ParallelExec[T any](ctx context.Context, vals []T, parallelThreshold, step uint64, fn func(T)) error {
	end := uint64(len(vals))
	if end < parallelThreshold {
		for _, v := range vals {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(v)
		}
		return nil
	}
	if step == 0 {
		step = 1
	}

	workers := min(runtime.NumCPU(), int((end+step-1)/step))
	next := atomic.NewUint64(0)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				hi := next.Add(step)
				lo := hi - step
				if lo >= end {
					return
				}
				for i := lo; i < min(hi, end); i++ {
					fn(vals[i])
				}
			}
		}()
	}
	wg.Wait()
	return ctx.Err()
}
