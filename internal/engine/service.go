package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ja-ri/HabitQuest/internal/storage"
)

// Service binds the pure transitions to the persistence provider. Reads
// happen synchronously on login; mutation writes go through the
// write-behind queue so the caller never waits on the database.
type Service struct {
	users   *storage.UserRepo
	queue   *storage.WriteQueue
	catalog *Catalog
	log     *zap.Logger
}

func NewService(users *storage.UserRepo, queue *storage.WriteQueue, catalog *Catalog, log *zap.Logger) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		users:   users,
		queue:   queue,
		catalog: catalog,
		log:     log,
	}
}

func (s *Service) Catalog() *Catalog           { return s.catalog }
func (s *Service) UserRepo() *storage.UserRepo { return s.users }

// Login fetches the record for username, creating and persisting the
// default state for a first-time user. Unknown users are not an error.
func (s *Service) Login(ctx context.Context, username string) (State, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return State{}, InvalidUsernameError{}
	}

	rec, err := s.users.Get(ctx, username)
	if err != nil {
		return State{}, PersistenceError{Op: "login read", Err: err}
	}
	if rec != nil {
		st, err := stateFromRecord(rec)
		if err != nil {
			return State{}, PersistenceError{Op: "login decode", Err: err}
		}
		return st, nil
	}

	st := NewState()
	if err := s.users.Put(ctx, username, s.recordFromState(st), storage.PutOptions{}); err != nil {
		return State{}, PersistenceError{Op: "login create", Err: err}
	}
	s.log.Info("created new user", zap.String("user", username))
	return st, nil
}

// CompleteHabit runs the completion transition and enqueues a merge write
// of the updated record. Re-completing today's habit is a silent no-op.
func (s *Service) CompleteHabit(username string, st State, habitID int, today Date) (State, []Notification, error) {
	habit, ok := s.catalog.Get(habitID)
	if !ok {
		return st, nil, UnknownHabitError{ID: habitID}
	}
	if st.IsCompleted(habitID) {
		return st, nil, nil
	}

	next, notes := CompleteHabit(st, habit, today)
	s.queue.Enqueue(username, s.recordFromState(next))
	return next, notes, nil
}

// Rollover applies the day-rollover transition, persisting only when the
// checklist actually cleared. The second return reports whether it did.
func (s *Service) Rollover(username string, st State, today Date) (State, bool) {
	next := RolloverDay(st, today)
	if len(next.CompletedToday) == len(st.CompletedToday) {
		return st, false
	}
	s.queue.Enqueue(username, s.recordFromState(next))
	return next, true
}

func (s *Service) recordFromState(st State) storage.Record {
	habits := make([]storage.HabitEntry, 0, s.catalog.Len())
	for _, h := range s.catalog.Habits() {
		habits = append(habits, storage.HabitEntry{ID: h.ID, Name: h.Name, XPValue: h.XPValue})
	}
	return storage.Record{
		Habits:            habits,
		Completed:         append([]int(nil), st.CompletedToday...),
		XP:                st.XP,
		Level:             st.Level,
		Streak:            st.Streak,
		LastCompletedDate: string(st.LastCompleted),
	}
}

// stateFromRecord adopts a stored record, defaulting fields absent from
// older rows: level floors at 1, negatives clamp to 0.
func stateFromRecord(rec *storage.Record) (State, error) {
	last, err := ParseDate(rec.LastCompletedDate)
	if err != nil {
		return State{}, err
	}

	st := State{
		CompletedToday: append([]int(nil), rec.Completed...),
		XP:             rec.XP,
		Level:          rec.Level,
		Streak:         rec.Streak,
		LastCompleted:  last,
	}
	if st.Level < 1 {
		st.Level = 1
	}
	if st.XP < 0 {
		st.XP = 0
	}
	if st.Streak < 0 || last.IsZero() {
		st.Streak = 0
	}
	return st, nil
}
