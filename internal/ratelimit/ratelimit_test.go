package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowConsumesBurst(t *testing.T) {
	t.Parallel()

	limiter := New(3, 0.0001) // effectively no refill during the test
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestRefillRestoresTokens(t *testing.T) {
	t.Parallel()

	limiter := New(1, 100) // 1 token per 10ms
	require.True(t, limiter.Allow())
	require.False(t, limiter.Allow())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, limiter.Allow())
}

func TestWaitReturnsWhenTokenAccrues(t *testing.T) {
	t.Parallel()

	limiter := New(1, 50) // 1 token per 20ms
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx))
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitHonorsContext(t *testing.T) {
	t.Parallel()

	limiter := New(1, 0.001) // refill far too slow for the deadline
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConcurrentAllow(t *testing.T) {
	t.Parallel()

	limiter := New(100, 0.0001)
	done := make(chan int, 10)
	for n := 0; n < 10; n++ {
		go func() {
			allowed := 0
			for n := 0; n < 20; n++ {
				if limiter.Allow() {
					allowed++
				}
			}
			done <- allowed
		}()
	}

	total := 0
	for n := 0; n < 10; n++ {
		total += <-done
	}
	// 200 attempts against a burst of 100
	assert.Equal(t, 100, total)
}
