package dispatch

import (
	"context"
	"sync"

	"github.com/go-drift/sparkle/pkg/errors"
)

// Queue is a cooperative task queue. Producers on any goroutine call
// Dispatch; the goroutine owning the visual tree runs the tasks with Run,
// Drain or RunUntil.
//
// Tasks run one at a time in the order they were dispatched. A panicking
// task is reported and does not stop the queue.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	notify chan struct{}
}

// NewQueue creates a queue with room for size tasks before it grows.
func NewQueue(size int) *Queue {
	return &Queue{
		tasks:  make([]func(), 0, size),
		notify: make(chan struct{}, 1),
	}
}

// Dispatch appends a task. Safe for concurrent use.
func (q *Queue) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, callback)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs every pending task, including tasks dispatched while draining,
// and returns how many ran. It never blocks.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return ran
		}
		batch := q.tasks
		q.tasks = nil
		q.mu.Unlock()

		for _, task := range batch {
			runTask(task)
			ran++
		}
	}
}

// Run drains the queue whenever tasks arrive until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.notify:
		}
	}
}

// RunUntil drains the queue until done is closed or ctx is done. It is the
// usual way to await a Future while keeping the UI loop turning.
func (q *Queue) RunUntil(ctx context.Context, done <-chan struct{}) error {
	for {
		q.Drain()
		select {
		case <-done:
			q.Drain()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-q.notify:
		}
	}
}

func runTask(task func()) {
	defer errors.Recover("dispatch.Queue")
	task()
}
