package event

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when pushing to, or receiving from, a closed queue
// that has no items left.
var ErrClosed = errors.New("queue closed")

// Queue is an unbounded multi-producer, single-consumer FIFO.
// Push never blocks. Items pushed by one producer are received in push order.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	ready  chan struct{}
	done   chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Push appends an item. It fails with ErrClosed once the consumer has closed
// the queue.
func (q *Queue[T]) Push(item T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, item)
	q.notifyLocked()
	q.mu.Unlock()
	return nil
}

// TryRecv pops the oldest item without blocking.
func (q *Queue[T]) TryRecv() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) > 0 {
		q.notifyLocked()
	}
	return item, true
}

// Recv blocks until an item is available, the queue is closed and drained,
// or ctx is done.
func (q *Queue[T]) Recv(ctx context.Context) (T, error) {
	for {
		if item, ok := q.TryRecv(); ok {
			return item, nil
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-q.done:
			if item, ok := q.TryRecv(); ok {
				return item, nil
			}
			var zero T
			return zero, ErrClosed
		case <-q.ready:
		}
	}
}

// Ready fires when the queue may hold items. Use it in a select together
// with TryRecv.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

// Done is closed when the queue is closed.
func (q *Queue[T]) Done() <-chan struct{} {
	return q.done
}

// Close stops accepting items. Items already queued can still be received.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

// Len reports the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue[T]) notifyLocked() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
