package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePriorityOrder(t *testing.T) {
	q := NewInMemoryQueue()

	require.NoError(t, q.Push(NewTask("https://shop.example/a", 0)))
	require.NoError(t, q.Push(NewTask("https://shop.example/b", 5)))
	require.NoError(t, q.Push(NewTask("https://shop.example/c", 1)))

	assert.Equal(t, 3, q.Size())

	ctx := context.Background()

	first, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/b", first.URL)

	second, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/c", second.URL)

	third, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/a", third.URL)
}

func TestQueuePopDrainsAfterClose(t *testing.T) {
	q := NewInMemoryQueue()

	require.NoError(t, q.Push(NewTask("https://shop.example/last", 0)))
	require.NoError(t, q.Close())

	task, err := q.Pop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/last", task.URL)

	_, err = q.Pop(context.Background())
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueuePushAfterClose(t *testing.T) {
	q := NewInMemoryQueue()
	require.NoError(t, q.Close())

	err := q.Push(NewTask("https://shop.example/late", 0))
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueuePopRespectsContext(t *testing.T) {
	q := NewInMemoryQueue()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := q.Pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueueUsableAfterCancelledPop(t *testing.T) {
	q := NewInMemoryQueue()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := q.Pop(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, q.Push(NewTask("https://shop.example/after", 0)))

	task, err := q.Pop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/after", task.URL)
}

func TestQueueConcurrentPopsSurviveCancel(t *testing.T) {
	q := NewInMemoryQueue()

	ctx, cancel := context.WithCancel(context.Background())

	const waiters = 4
	errs := make(chan error, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			_, err := q.Pop(ctx)
			errs <- err
		}()
	}

	time.Sleep(20 * time.Millisecond)
	cancel()

	for i := 0; i < waiters; i++ {
		assert.ErrorIs(t, <-errs, context.Canceled)
	}

	require.NoError(t, q.Push(NewTask("https://shop.example/next", 0)))
	assert.Equal(t, 1, q.Size())
}
