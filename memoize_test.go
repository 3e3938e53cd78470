// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cash

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoize_Sqrt(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, Options{})

	var calls int
	sqrt := Memoize(c, func(_ context.Context, x float64) (float64, error) {
		calls++
		return math.Sqrt(x), nil
	}, MemoizeOptions[float64, float64]{})

	v, err := sqrt(ctx, 16)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = sqrt(ctx, 16)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
	assert.Equal(t, 1, calls)

	got, ok, err := Fetch[float64](ctx, c, 16)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4.0, got)
}

func TestMemoize_CustomSerializer(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, Options{})

	var calls int
	sum := Memoize(c, func(_ context.Context, args [2]int) (int, error) {
		calls++
		return args[0] + args[1], nil
	}, MemoizeOptions[[2]int, int]{
		Serialize: func(args [2]int) string { return fmt.Sprintf("%d+%d", args[0], args[1]) },
	})

	for range 2 {
		v, err := sum(ctx, [2]int{3, 4})
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 1, calls)

	got, ok, err := Fetch[int](ctx, c, "3+4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, got)
}

func TestMemoize_FixedTTL(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c, _ := newTestCache(t, Options{Clock: clock.Now})

	var calls int
	fn := Memoize(c, func(_ context.Context, s string) (string, error) {
		calls++
		return s + "!", nil
	}, MemoizeOptions[string, string]{TTL: FixedTTL[string](time.Minute)})

	_, err := fn(ctx, "a")
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	_, err = fn(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	clock.Advance(time.Minute)
	v, err := fn(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a!", v)
	assert.Equal(t, 2, calls)
}

func TestMemoize_TTLFromResult(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c, _ := newTestCache(t, Options{Clock: clock.Now})

	identity := Memoize(c, func(_ context.Context, n int) (int, error) {
		return n, nil
	}, MemoizeOptions[int, int]{
		TTL: TTLFrom(func(r int) time.Duration { return time.Duration(r) * time.Millisecond }),
	})

	for _, n := range []int{10, 100} {
		_, err := identity(ctx, n)
		require.NoError(t, err)
	}

	entries, err := c.Entries(ctx)
	require.NoError(t, err)
	assert.True(t, entries["10"].Expires.Equal(clock.Now().Add(10*time.Millisecond)))
	assert.True(t, entries["100"].Expires.Equal(clock.Now().Add(100*time.Millisecond)))

	clock.Advance(50 * time.Millisecond)

	_, ok, err := c.Get(ctx, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, 100)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoize_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, Options{})

	boom := errors.New("boom")
	fail := true
	fn := Memoize(c, func(_ context.Context, s string) (string, error) {
		if fail {
			return "", boom
		}
		return "ok", nil
	}, MemoizeOptions[string, string]{})

	_, err := fn(ctx, "k")
	assert.ErrorIs(t, err, boom)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	fail = false
	v, err := fn(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestMemoize_NullIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, Options{})

	var calls int
	fn := Memoize(c, func(_ context.Context, s string) (*string, error) {
		calls++
		return nil, nil
	}, MemoizeOptions[string, *string]{})

	for range 3 {
		v, err := fn(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, v)
	}
	assert.Equal(t, 3, calls)
}

func TestMemoize_ConcurrentMissesShareOneCall(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, Options{})

	var calls atomic.Int32
	release := make(chan struct{})
	fn := Memoize(c, func(_ context.Context, s string) (string, error) {
		calls.Add(1)
		<-release
		return s, nil
	}, MemoizeOptions[string, string]{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := fn(ctx, "k")
			assert.NoError(t, err)
			assert.Equal(t, "k", v)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestMemoize_WrappersOnSameKeyStaySeparate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, Options{})

	entered := make(chan struct{})
	release := make(chan struct{})
	sqrt := Memoize(c, func(_ context.Context, n int) (float64, error) {
		close(entered)
		<-release
		return math.Sqrt(float64(n)), nil
	}, MemoizeOptions[int, float64]{})

	var labelCalls atomic.Int32
	label := Memoize(c, func(_ context.Context, n int) (string, error) {
		labelCalls.Add(1)
		return fmt.Sprintf("n=%d", n), nil
	}, MemoizeOptions[int, string]{})

	done := make(chan float64)
	go func() {
		v, err := sqrt(ctx, 16)
		assert.NoError(t, err)
		done <- v
	}()

	<-entered
	s, err := label(ctx, 16)
	require.NoError(t, err)
	assert.Equal(t, "n=16", s)
	assert.Equal(t, int32(1), labelCalls.Load())

	close(release)
	assert.Equal(t, 4.0, <-done)
}
