package session

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ja-ri/HabitQuest/internal/engine"
)

// Ticker watches the wall clock and reports calendar-day changes. The
// presentation layer consumes Days() and applies the rollover transition
// itself, which keeps clock reads out of the engine.
type Ticker struct {
	sched *gocron.Scheduler
	days  chan engine.Date
	last  engine.Date
	now   func() time.Time
}

// New creates a ticker that checks for a day change every interval.
func New(interval time.Duration) *Ticker {
	return newTicker(interval, time.Now)
}

func newTicker(interval time.Duration, now func() time.Time) *Ticker {
	t := &Ticker{
		sched: gocron.NewScheduler(time.Local),
		days:  make(chan engine.Date, 1),
		now:   now,
	}
	t.last = engine.Today(now())
	_, _ = t.sched.Every(interval).Do(t.check)
	return t
}

// Days yields the new date once per calendar-day change.
func (t *Ticker) Days() <-chan engine.Date {
	return t.days
}

// Start begins the background checks without blocking.
func (t *Ticker) Start() {
	t.sched.StartAsync()
}

// Stop halts the scheduler. Days() stops producing afterwards.
func (t *Ticker) Stop() {
	t.sched.Stop()
}

func (t *Ticker) check() {
	today := engine.Today(t.now())
	if today == t.last {
		return
	}
	t.last = today
	// Single producer, buffer of one: drop a stale undelivered day so the
	// consumer always sees the newest date.
	select {
	case <-t.days:
	default:
	}
	t.days <- today
}
