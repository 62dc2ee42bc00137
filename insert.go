package sievebench

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// InsertAll populates a filter with every element, sequentially. The
// final bit-array state is identical to ParallelInsertAll on the same
// input: each (element, salt) pair performs one idempotent bit set, and
// monotonic OR over the array is order-independent.
func InsertAll(sieve Sieve, elements []string) {
	for _, e := range elements {
		sieve.AddString(e)
	}
}

// ParallelInsertAll fans the element list out across workers writing to
// the same AtomicFilter. The iteration space is the cross-product of
// elements and salts; workers take contiguous element chunks and probe
// all k salts per element. No synchronization beyond the filter's atomic
// OR is needed, since every unit of work is an idempotent bit set.
// workers <= 0 selects GOMAXPROCS.
func ParallelInsertAll(ctx context.Context, f *AtomicFilter, elements []string, workers int) error {
	if len(elements) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(elements) + workers - 1) / workers
	for start := 0; start < len(elements); start += chunk {
		part := elements[start:min(start+chunk, len(elements))]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, e := range part {
				f.AddString(e)
			}
			return nil
		})
	}
	return g.Wait()
}
