package gather

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_PreservesInputOrder(t *testing.T) {
	// later indexes finish first
	res, err := Collect(context.Background(), 5, 5, func(ctx context.Context, i int) (int, error) {
		time.Sleep(time.Duration(5-i) * 5 * time.Millisecond)
		return i * 10, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20, 30, 40}, res.Values)
	assert.Equal(t, 0, res.Omitted())
	assert.Empty(t, res.Failures)
}

func TestCollect_PartialFailure(t *testing.T) {
	boom := errors.New("boom")

	res, err := Collect(context.Background(), 4, 2, func(ctx context.Context, i int) (string, error) {
		if i%2 == 1 {
			return "", boom
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"ok", "", "ok", ""}, res.Values)
	assert.Equal(t, []bool{true, false, true, false}, res.OK)
	assert.Equal(t, 2, res.Omitted())
	require.Len(t, res.Failures, 2)
	assert.Equal(t, 1, res.Failures[0].Index)
	assert.ErrorIs(t, res.Failures[0].Err, boom)
	assert.Equal(t, 3, res.Failures[1].Index)
}

func TestCollect_RespectsLimit(t *testing.T) {
	var inFlight, peak int32

	_, err := Collect(context.Background(), 12, 3, func(ctx context.Context, i int) (int, error) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return i, nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestCollect_SequentialWhenLimitIsOne(t *testing.T) {
	var order []int

	_, err := Collect(context.Background(), 4, 1, func(ctx context.Context, i int) (int, error) {
		order = append(order, i)
		return i, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestCollect_Empty(t *testing.T) {
	res, err := Collect(context.Background(), 0, 4, func(ctx context.Context, i int) (int, error) {
		t.Fatal("fn must not be called")
		return 0, nil
	})

	require.NoError(t, err)
	assert.Empty(t, res.Values)
	assert.Equal(t, 0, res.Omitted())
}

func TestCollect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Collect(ctx, 3, 1, func(ctx context.Context, i int) (int, error) {
		return i, ctx.Err()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, res.Omitted())
	assert.Len(t, res.Failures, 3)
}
