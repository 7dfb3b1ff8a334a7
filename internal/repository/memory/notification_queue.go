package memory

import (
	"context"
	"sync"

	"crowdwatch/internal/domain/entities"
)

// NotificationQueue is the in-memory pending-delivery buffer. DrainAll swaps
// the backing slice out under the lock, so a retry pass works on a stable
// batch while new failures re-queue behind it.
type NotificationQueue struct {
	mu      sync.Mutex
	pending []*entities.Notification
}

func NewNotificationQueue() *NotificationQueue {
	return &NotificationQueue{}
}

// Enqueue appends a notification to the pending buffer.
func (q *NotificationQueue) Enqueue(ctx context.Context, n *entities.Notification) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, n)
	return nil
}

// DrainAll removes and returns every pending notification in FIFO order.
func (q *NotificationQueue) DrainAll(ctx context.Context) ([]*entities.Notification, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := q.pending
	q.pending = nil
	return drained, nil
}

// Len returns the number of pending notifications.
func (q *NotificationQueue) Len(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending), nil
}
