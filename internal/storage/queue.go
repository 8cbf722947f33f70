package storage

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultWriteRetries = 3
	defaultWriteBackoff = 250 * time.Millisecond
	writeTimeout        = 5 * time.Second
)

// WriteQueue persists records asynchronously so the UI never blocks on
// the database. Writes are serialized per username — one in-flight write
// at a time, with a newer enqueued record replacing the queued one — so
// last-write-wins order is preserved. Failures are retried with backoff
// and surfaced through the logger and the OnError callback, never
// swallowed; the in-memory state stays the source of truth either way.
type WriteQueue struct {
	repo *UserRepo
	log  *zap.Logger

	mu       sync.Mutex
	pending  map[string]Record
	inflight map[string]bool
	wg       sync.WaitGroup

	retries int
	backoff time.Duration
	onError func(username string, err error)
}

func NewWriteQueue(repo *UserRepo, log *zap.Logger) *WriteQueue {
	if log == nil {
		log = zap.NewNop()
	}
	return &WriteQueue{
		repo:     repo,
		log:      log,
		pending:  map[string]Record{},
		inflight: map[string]bool{},
		retries:  defaultWriteRetries,
		backoff:  defaultWriteBackoff,
	}
}

// OnError registers a callback invoked after retries are exhausted.
// Register before the first Enqueue.
func (q *WriteQueue) OnError(fn func(username string, err error)) {
	q.onError = fn
}

// Enqueue schedules rec to be written for username and returns
// immediately. A record already queued for the same user is replaced.
func (q *WriteQueue) Enqueue(username string, rec Record) {
	q.mu.Lock()
	q.pending[username] = rec
	if q.inflight[username] {
		q.mu.Unlock()
		return
	}
	q.inflight[username] = true
	q.wg.Add(1)
	q.mu.Unlock()

	go q.drain(username)
}

func (q *WriteQueue) drain(username string) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		rec, ok := q.pending[username]
		if !ok {
			q.inflight[username] = false
			q.mu.Unlock()
			return
		}
		delete(q.pending, username)
		q.mu.Unlock()

		q.write(username, rec)
	}
}

func (q *WriteQueue) write(username string, rec Record) {
	var err error
	for attempt := 0; attempt <= q.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(q.backoff * time.Duration(attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err = q.repo.Put(ctx, username, rec, PutOptions{Merge: true})
		cancel()
		if err == nil {
			return
		}
		q.log.Warn("record write failed",
			zap.String("user", username),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	q.log.Error("record write dropped after retries; progress kept in memory only",
		zap.String("user", username),
		zap.Error(err))
	if q.onError != nil {
		q.onError(username, err)
	}
}

// Flush blocks until every queued write has finished or ctx expires.
func (q *WriteQueue) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
