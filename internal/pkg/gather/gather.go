// Package gather runs a set of independent, fallible lookups with bounded
// concurrency and collects them into a partial-success result.
package gather

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Failure records why the lookup at Index produced nothing
type Failure struct {
	Index int
	Err   error
}

// Result is index-aligned with the input: Values[i] belongs to lookup i and is
// the zero value when lookup i failed or never ran.
type Result[T any] struct {
	Values   []T
	OK       []bool
	Failures []Failure
}

// Omitted returns how many lookups contributed nothing
func (r Result[T]) Omitted() int {
	n := 0
	for _, ok := range r.OK {
		if !ok {
			n++
		}
	}
	return n
}

type outcome[T any] struct {
	index int
	value T
	err   error
}

// Collect calls fn for every index in [0, n) with at most limit calls in
// flight. Workers hand their outcome to the calling goroutine, which is the
// only writer of the result. Individual failures never abort the others.
// The returned error is non-nil only when ctx ends before every lookup ran;
// lookups that never started are reported as failures carrying ctx.Err().
func Collect[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (T, error)) (Result[T], error) {
	res := Result[T]{
		Values: make([]T, n),
		OK:     make([]bool, n),
	}
	if n == 0 {
		return res, ctx.Err()
	}
	if limit < 1 {
		limit = 1
	}

	outcomes := make(chan outcome[T])
	seen := make([]bool, n)

	var g errgroup.Group
	g.SetLimit(limit)
	go func() {
		for i := 0; i < n; i++ {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				v, err := fn(ctx, i)
				outcomes <- outcome[T]{index: i, value: v, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	failed := make(map[int]error)
	for o := range outcomes {
		seen[o.index] = true
		if o.err != nil {
			failed[o.index] = o.err
			continue
		}
		res.Values[o.index] = o.value
		res.OK[o.index] = true
	}

	ctxErr := ctx.Err()
	for i := 0; i < n; i++ {
		switch {
		case !seen[i]:
			res.Failures = append(res.Failures, Failure{Index: i, Err: ctxErr})
		case !res.OK[i]:
			res.Failures = append(res.Failures, Failure{Index: i, Err: failed[i]})
		}
	}

	return res, ctxErr
}
