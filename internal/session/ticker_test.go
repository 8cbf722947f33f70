package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-ri/HabitQuest/internal/engine"
)

func TestTickerEmitsOncePerDayChange(t *testing.T) {
	now := time.Date(2024, 1, 1, 23, 50, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	tk := newTicker(time.Second, clock)

	tk.check()
	select {
	case d := <-tk.days:
		t.Fatalf("unexpected emit %q before day change", d)
	default:
	}

	now = now.Add(20 * time.Minute) // crosses midnight
	tk.check()
	require.Equal(t, engine.Date("2024-01-02"), <-tk.days)

	// Same day again: nothing new.
	tk.check()
	select {
	case d := <-tk.days:
		t.Fatalf("duplicate emit %q", d)
	default:
	}
}

func TestTickerKeepsNewestUnconsumedDay(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	tk := newTicker(time.Second, clock)

	now = now.AddDate(0, 0, 1)
	tk.check()
	now = now.AddDate(0, 0, 1)
	tk.check()

	// The stale day was replaced; only the newest is delivered.
	assert.Equal(t, engine.Date("2024-01-03"), <-tk.days)
	select {
	case d := <-tk.days:
		t.Fatalf("stale emit %q", d)
	default:
	}
}
