// Package effects runs persistence side effects off the request path. A
// mutation is applied to in-memory state first; its write is enqueued here and
// a failure is reported as a notification, never rolled back or retried.
package effects

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Effect is one asynchronous write.
type Effect struct {
	Name string
	Run  func(ctx context.Context) error
}

// Notification reports a failed effect to the operator.
type Notification struct {
	Effect  string    `json:"effect"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Queue executes effects in FIFO order on a single worker goroutine.
type Queue struct {
	effects chan Effect
	pending sync.WaitGroup
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	recent []Notification
	limit  int
	subs   []chan Notification

	closeOnce sync.Once
	done      chan struct{}
}

// NewQueue starts a queue holding up to size waiting effects. Each effect
// runs with the given timeout.
func NewQueue(size int, timeout time.Duration, logger *zap.Logger) *Queue {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &Queue{
		effects: make(chan Effect, size),
		timeout: timeout,
		logger:  logger,
		limit:   50,
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue schedules an effect. It blocks only when the queue is full.
func (q *Queue) Enqueue(name string, run func(ctx context.Context) error) {
	q.pending.Add(1)
	q.effects <- Effect{Name: name, Run: run}
}

// Wait blocks until every enqueued effect has finished.
func (q *Queue) Wait() {
	q.pending.Wait()
}

// Close drains the queue and stops the worker.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.Wait()
		close(q.effects)
		<-q.done
	})
}

// Subscribe returns a channel receiving future notifications. Slow
// subscribers miss notifications rather than blocking the worker.
func (q *Queue) Subscribe() <-chan Notification {
	ch := make(chan Notification, 16)
	q.mu.Lock()
	q.subs = append(q.subs, ch)
	q.mu.Unlock()
	return ch
}

// Recent returns the latest notifications, newest last.
func (q *Queue) Recent() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Notification(nil), q.recent...)
}

func (q *Queue) run() {
	defer close(q.done)
	for e := range q.effects {
		q.execute(e)
		q.pending.Done()
	}
}

func (q *Queue) execute(e Effect) {
	ctx := context.Background()
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	if err := e.Run(ctx); err != nil {
		q.logger.Warn("persistence effect failed", zap.String("effect", e.Name), zap.Error(err))
		q.notify(Notification{Effect: e.Name, Message: err.Error(), Time: time.Now()})
		return
	}
	q.logger.Debug("persistence effect applied", zap.String("effect", e.Name))
}

func (q *Queue) notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.recent = append(q.recent, n)
	if len(q.recent) > q.limit {
		q.recent = q.recent[len(q.recent)-q.limit:]
	}
	for _, ch := range q.subs {
		select {
		case ch <- n:
		default:
		}
	}
}
