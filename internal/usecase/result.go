package usecase

import (
	"context"
	"sync"
)

// Result is the outcome of one best-effort item.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the item succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Or returns the value, or def when the item failed.
func (r Result[T]) Or(def T) T {
	if r.Err != nil {
		return def
	}
	return r.Value
}

// collect runs fn for every index concurrently and returns the outcomes in index order.
// It never fails as a whole; callers decide per item how to degrade.
func collect[T any](ctx context.Context, n int, fn func(ctx context.Context, i int) (T, error)) []Result[T] {
	out := make([]Result[T], n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			v, err := fn(ctx, i)
			out[i] = Result[T]{Value: v, Err: err}
		}(i)
	}
	wg.Wait()
	return out
}
