// Package fanout provides the bounded concurrency primitives used to call
// slow upstreams: a hard per-call deadline and a limited, time-boxed gather.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrDeadline is returned when a call or a gather outlives its budget.
var ErrDeadline = errors.New("deadline exceeded")

type result[T any] struct {
	val T
	err error
}

// Deadline runs fn with a context that expires after d and returns as soon
// as fn finishes or d elapses, whichever is first. On expiry the goroutine
// running fn is abandoned: its context is cancelled and its result
// discarded, but fn is not required to return promptly.
func Deadline[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if d <= 0 {
		return fn(ctx)
	}

	cctx, cancel := context.WithTimeout(ctx, d)
	done := make(chan result[T], 1)
	go func() {
		defer cancel()
		v, err := fn(cctx)
		done <- result[T]{v, err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-cctx.Done():
		select {
		case r := <-done:
			return r.val, r.err
		default:
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, fmt.Errorf("%w after %s", ErrDeadline, d)
	}
}

// Task is one unit of work for Gather.
type Task[T any] func(context.Context) (T, error)

// Gather runs tasks with at most limit in flight and waits up to timeout
// for all of them. Results of successful tasks are returned in completion
// order. Failed tasks are skipped. When the timeout fires, Gather returns
// whatever finished so far together with an error wrapping ErrDeadline.
func Gather[T any](ctx context.Context, limit int, timeout time.Duration, tasks []Task[T]) ([]T, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = len(tasks)
	}

	var (
		gctx   context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		gctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		gctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	var (
		mu  sync.Mutex
		out = make([]T, 0, len(tasks))
	)
	snapshot := func() []T {
		mu.Lock()
		defer mu.Unlock()
		return append([]T(nil), out...)
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for _, task := range tasks {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				v, err := task(gctx)
				if err != nil {
					return nil // individual failures are dropped
				}
				mu.Lock()
				out = append(out, v)
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-finished:
		return snapshot(), nil
	case <-gctx.Done():
		select {
		case <-finished:
			return snapshot(), nil
		default:
		}
		got := snapshot()
		if ctx.Err() != nil {
			return got, ctx.Err()
		}
		return got, fmt.Errorf("%w: gathered %d of %d after %s", ErrDeadline, len(got), len(tasks), timeout)
	}
}
