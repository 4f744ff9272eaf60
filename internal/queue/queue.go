package queue

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrQueueEmpty  = errors.New("queue is empty")
	ErrQueueClosed = errors.New("queue is closed")
)

// Task is a single page waiting to be fetched and extracted.
type Task struct {
	ID        string
	URL       string
	Priority  int
	Retries   int
	CreatedAt time.Time
}

func NewTask(url string, priority int) *Task {
	return &Task{
		ID:        uuid.New().String(),
		URL:       url,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
}

type Queue interface {
	Push(task *Task) error
	Pop(ctx context.Context) (*Task, error)
	Size() int
	Close() error
}

type InMemoryQueue struct {
	tasks  []*Task
	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
}

func NewInMemoryQueue() *InMemoryQueue {
	q := &InMemoryQueue{
		tasks: make([]*Task, 0),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *InMemoryQueue) Push(task *Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.tasks = append(q.tasks, task)
	sort.SliceStable(q.tasks, func(i, j int) bool {
		return q.tasks[i].Priority > q.tasks[j].Priority
	})
	q.cond.Signal()

	return nil
}

func (q *InMemoryQueue) PushAll(tasks []*Task) error {
	for _, task := range tasks {
		if err := q.Push(task); err != nil {
			return err
		}
	}
	return nil
}

func (q *InMemoryQueue) Pop(ctx context.Context) (*Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.tasks) == 0 && !q.closed {
		done := make(chan struct{})
		go func() {
			q.cond.Wait()
			close(done)
		}()

		select {
		case <-ctx.Done():
			// Wake the waiter and let cond.Wait re-acquire the mutex
			// before returning, so the deferred unlock has a locked
			// mutex to release.
			q.cond.Broadcast()
			<-done
			return nil, ctx.Err()
		case <-done:
		}
	}

	if q.closed && len(q.tasks) == 0 {
		return nil, ErrQueueClosed
	}

	task := q.tasks[0]
	q.tasks = q.tasks[1:]

	return task, nil
}

func (q *InMemoryQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()

	return nil
}
