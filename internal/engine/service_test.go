package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ja-ri/HabitQuest/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.UserRepo, *storage.WriteQueue) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	users := storage.NewUserRepo(db)
	queue := storage.NewWriteQueue(users, zap.NewNop())
	t.Cleanup(func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.Flush(flushCtx)
	})

	return NewService(users, queue, DefaultCatalog(), zap.NewNop()), users, queue
}

func flush(t *testing.T, queue *storage.WriteQueue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := queue.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestLoginCreatesAndPersistsDefaults(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	st, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if st.Level != 1 || st.XP != 0 || st.Streak != 0 || !st.LastCompleted.IsZero() {
		t.Fatalf("default state: %+v", st)
	}

	rec, err := users.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected record persisted on first login")
	}
	if len(rec.Habits) != len(DefaultHabits) {
		t.Fatalf("habits=%d, want %d", len(rec.Habits), len(DefaultHabits))
	}
	if rec.Level != 1 || rec.LastCompletedDate != "" {
		t.Fatalf("record: %+v", rec)
	}
}

func TestLoginBlankUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"", "   "} {
		_, err := svc.Login(ctx, name)
		var invalid InvalidUsernameError
		if !errors.As(err, &invalid) {
			t.Fatalf("login(%q) err=%v, want InvalidUsernameError", name, err)
		}
	}
}

func TestLoginAdoptsExistingRecord(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	err := users.Put(ctx, "bob", storage.Record{
		Completed:         []int{2, 5},
		XP:                60,
		Level:             2,
		Streak:            4,
		LastCompletedDate: "2024-01-01",
	}, storage.PutOptions{})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}

	st, err := svc.Login(ctx, "bob")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if st.XP != 60 || st.Level != 2 || st.Streak != 4 || st.LastCompleted != "2024-01-01" {
		t.Fatalf("adopted state: %+v", st)
	}
	if !st.IsCompleted(2) || !st.IsCompleted(5) {
		t.Fatalf("completed: %v", st.CompletedToday)
	}
}

func TestLoginDefaultsMissingFields(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	// A row written with only the username keeps column defaults; streak
	// stays 0 because no completion date exists.
	if err := users.Update(ctx, "carol", storage.Patch{}); err != nil {
		t.Fatalf("seed row: %v", err)
	}
	streak := 3
	if err := users.Update(ctx, "carol", storage.Patch{Streak: &streak}); err != nil {
		t.Fatalf("seed streak: %v", err)
	}

	st, err := svc.Login(ctx, "carol")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if st.Level != 1 {
		t.Fatalf("level=%d, want floor of 1", st.Level)
	}
	if st.Streak != 0 {
		t.Fatalf("streak=%d, want 0 with no lastCompletedDate", st.Streak)
	}
}

func TestCompleteHabitUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	st, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	next, notes, err := svc.CompleteHabit("alice", st, 99, "2024-01-01")
	var unknown UnknownHabitError
	if !errors.As(err, &unknown) {
		t.Fatalf("err=%v, want UnknownHabitError", err)
	}
	if unknown.ID != 99 {
		t.Fatalf("unknown id=%d", unknown.ID)
	}
	if len(notes) != 0 || next.XP != st.XP || len(next.CompletedToday) != 0 {
		t.Fatalf("state mutated on unknown habit: %+v", next)
	}
}

func TestCompleteHabitPersistsThroughQueue(t *testing.T) {
	svc, users, queue := newTestService(t)
	ctx := context.Background()

	st, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	st, _, err = svc.CompleteHabit("alice", st, 3, "2024-01-01")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	flush(t, queue)

	rec, err := users.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.XP != 20 || rec.Streak != 1 || rec.LastCompletedDate != "2024-01-01" {
		t.Fatalf("record: %+v", rec)
	}
	if len(rec.Completed) != 1 || rec.Completed[0] != 3 {
		t.Fatalf("completed: %v", rec.Completed)
	}
}

func TestCompleteHabitNoopSkipsWrite(t *testing.T) {
	svc, users, queue := newTestService(t)
	ctx := context.Background()

	st, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	st, _, err = svc.CompleteHabit("alice", st, 1, "2024-01-01")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	flush(t, queue)

	// Tamper with the stored row, then re-complete the same habit: a
	// no-op must not enqueue a write that would overwrite it.
	xp := 999
	if err := users.Update(ctx, "alice", storage.Patch{XP: &xp}); err != nil {
		t.Fatalf("tamper: %v", err)
	}
	next, notes, err := svc.CompleteHabit("alice", st, 1, "2024-01-01")
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if len(notes) != 0 || next.XP != st.XP {
		t.Fatalf("no-op changed state: %+v", next)
	}
	flush(t, queue)

	rec, err := users.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.XP != 999 {
		t.Fatalf("no-op wrote to storage: xp=%d", rec.XP)
	}
}

func TestRolloverPersistsOnlyWhenCleared(t *testing.T) {
	svc, users, queue := newTestService(t)
	ctx := context.Background()

	st, err := svc.Login(ctx, "alice")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	st, _, err = svc.CompleteHabit("alice", st, 1, "2024-01-01")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	same, cleared := svc.Rollover("alice", st, "2024-01-01")
	if cleared {
		t.Fatalf("same-day rollover reported a clear")
	}
	if len(same.CompletedToday) != 1 {
		t.Fatalf("same-day rollover cleared checklist")
	}

	next, cleared := svc.Rollover("alice", st, "2024-01-02")
	if !cleared {
		t.Fatalf("expected clear on new day")
	}
	if len(next.CompletedToday) != 0 || next.XP != st.XP || next.Streak != st.Streak {
		t.Fatalf("rollover state: %+v", next)
	}
	flush(t, queue)

	rec, err := users.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if len(rec.Completed) != 0 {
		t.Fatalf("persisted completed=%v, want empty", rec.Completed)
	}
	if rec.Streak != next.Streak || rec.XP != next.XP {
		t.Fatalf("persisted record: %+v", rec)
	}
}
