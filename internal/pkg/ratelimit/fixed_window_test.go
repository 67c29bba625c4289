package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_WithinLimit(t *testing.T) {
	fw := New(Config{Limit: 5, Window: time.Second, QueueLimit: 2})
	defer fw.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, fw.Acquire(context.Background()))
	}
}

func TestAcquire_RejectsBeyondQueue(t *testing.T) {
	fw := New(Config{Limit: 2, Window: time.Minute, QueueLimit: 1})
	defer fw.Close()

	require.NoError(t, fw.Acquire(context.Background()))
	require.NoError(t, fw.Acquire(context.Background()))

	// Third request parks in the queue.
	queued := make(chan error, 1)
	go func() {
		queued <- fw.Acquire(context.Background())
	}()

	// Give the queued request time to park before the fourth arrives.
	time.Sleep(50 * time.Millisecond)

	err := fw.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrLimitExceeded)

	select {
	case err := <-queued:
		t.Fatalf("queued request should still be parked, got %v", err)
	default:
	}
}

func TestAcquire_QueuedServedOnRollover(t *testing.T) {
	fw := New(Config{Limit: 1, Window: 100 * time.Millisecond, QueueLimit: 2})
	defer fw.Close()

	require.NoError(t, fw.Acquire(context.Background()))

	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 1; i <= 2; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			if err := fw.Acquire(context.Background()); err == nil {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
			}
		}()
		// Stagger arrivals so queue order is deterministic.
		time.Sleep(20 * time.Millisecond)
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 2, "both queued requests should eventually be admitted")
	assert.Equal(t, []int{1, 2}, order, "oldest queued request is served first")
}

func TestAcquire_ContextCancelledWhileQueued(t *testing.T) {
	fw := New(Config{Limit: 1, Window: time.Minute, QueueLimit: 2})
	defer fw.Close()

	require.NoError(t, fw.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- fw.Acquire(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled waiter did not return")
	}
}

func TestAcquire_CancelledWaiterFreesQueueSlot(t *testing.T) {
	fw := New(Config{Limit: 1, Window: 200 * time.Millisecond, QueueLimit: 1})
	defer fw.Close()

	require.NoError(t, fw.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	parked := make(chan error, 1)
	go func() {
		parked <- fw.Acquire(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-parked, context.Canceled)

	// The queue slot the cancelled waiter held must be usable again.
	assert.NoError(t, fw.Acquire(context.Background()))
}

func TestAcquire_NoOverAdmissionUnderConcurrency(t *testing.T) {
	const limit = 5
	fw := New(Config{Limit: limit, Window: time.Minute, QueueLimit: 0})
	defer fw.Close()

	var admitted, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fw.Acquire(context.Background()); err == nil {
				admitted.Add(1)
			} else {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(limit), admitted.Load())
	assert.Equal(t, int32(45), rejected.Load())
}

func TestAcquire_WindowResetsCounter(t *testing.T) {
	fw := New(Config{Limit: 2, Window: 80 * time.Millisecond, QueueLimit: 0})
	defer fw.Close()

	require.NoError(t, fw.Acquire(context.Background()))
	require.NoError(t, fw.Acquire(context.Background()))
	assert.ErrorIs(t, fw.Acquire(context.Background()), ErrLimitExceeded)

	time.Sleep(120 * time.Millisecond)

	assert.NoError(t, fw.Acquire(context.Background()))
}
