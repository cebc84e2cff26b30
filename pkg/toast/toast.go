// Package toast is a process-wide queue of ephemeral user notifications
// with a fixed visibility window, decoupled from any rendering surface.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Visibility is how long a toast stays active before it expires.
const Visibility = 4 * time.Second

// Level tags a toast for styling by whatever surface displays it.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is one queued message.
type Toast struct {
	ID      string
	Message string
	Level   Level
	Expiry  time.Time
}

// Queue holds active toasts. Safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	toasts []Toast
	now    func() time.Time
}

// NewQueue builds an empty queue.
func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// newQueueAt is the test constructor with a fixed clock.
func newQueueAt(now func() time.Time) *Queue {
	return &Queue{now: now}
}

// Push enqueues a message and returns its id.
func (q *Queue) Push(message string, level Level) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := uuid.NewString()
	q.toasts = append(q.toasts, Toast{
		ID:      id,
		Message: message,
		Level:   level,
		Expiry:  q.now().Add(Visibility),
	})
	return id
}

// Dismiss removes a toast before its expiry. Unknown ids are a no-op.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}

// Active drops expired toasts and returns the remainder in arrival order.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if t.Expiry.After(now) {
			kept = append(kept, t)
		}
	}
	q.toasts = kept

	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}
