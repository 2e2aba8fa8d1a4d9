package fanout

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadline_ReturnsResult(t *testing.T) {
	v, err := Deadline(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestDeadline_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Deadline(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestDeadline_ExpiresWhileCallIgnoresContext(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	start := time.Now()
	_, err := Deadline(context.Background(), 50*time.Millisecond, func(ctx context.Context) (string, error) {
		<-release // ignores ctx on purpose
		return "late", nil
	})
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, ErrDeadline)
	assert.Less(t, elapsed, time.Second)
}

func TestDeadline_CancelsContext(t *testing.T) {
	cancelled := make(chan struct{})
	_, err := Deadline(context.Background(), 20*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(cancelled)
		return 0, ctx.Err()
	})
	require.Error(t, err)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("callee context was not cancelled")
	}
}

func TestDeadline_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Deadline(ctx, time.Second, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, errors.New("stopped")
	})
	require.Error(t, err)
}

func TestGather_AllSucceed(t *testing.T) {
	tasks := make([]Task[int], 10)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (int, error) { return i, nil }
	}

	got, err := Gather(context.Background(), 3, time.Second, tasks)
	require.NoError(t, err)
	sort.Ints(got)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestGather_SkipsFailures(t *testing.T) {
	tasks := []Task[string]{
		func(ctx context.Context) (string, error) { return "a", nil },
		func(ctx context.Context) (string, error) { return "", errors.New("bad feed") },
		func(ctx context.Context) (string, error) { return "c", nil },
	}
	got, err := Gather(context.Background(), 2, time.Second, tasks)
	require.NoError(t, err)
	sort.Strings(got)
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestGather_RespectsLimit(t *testing.T) {
	var inFlight, peak int32
	tasks := make([]Task[int], 12)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (int, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return i, nil
		}
	}

	_, err := Gather(context.Background(), 4, 5*time.Second, tasks)
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(4))
}

func TestGather_PartialOnTimeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	tasks := []Task[string]{
		func(ctx context.Context) (string, error) { return "fast", nil },
		func(ctx context.Context) (string, error) {
			<-release
			return "slow", nil
		},
	}

	start := time.Now()
	got, err := Gather(context.Background(), 2, 50*time.Millisecond, tasks)
	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, err, ErrDeadline)
	assert.Equal(t, []string{"fast"}, got)
}

func TestGather_Empty(t *testing.T) {
	got, err := Gather[int](context.Background(), 2, time.Second, nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
