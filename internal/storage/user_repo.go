package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// UserRepo is the persistence provider for per-user progression records.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Get returns the record for username, or nil when the user is unknown.
// Absence is the normal new-user path, not an error.
func (r *UserRepo) Get(ctx context.Context, username string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT habits, completed, xp, level, streak, last_completed_date
		FROM users
		WHERE username = ?
	`, username)

	var (
		rec           Record
		habitsJSON    string
		completedJSON string
		last          sql.NullString
	)
	if err := row.Scan(&habitsJSON, &completedJSON, &rec.XP, &rec.Level, &rec.Streak, &last); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	if err := json.Unmarshal([]byte(habitsJSON), &rec.Habits); err != nil {
		return nil, fmt.Errorf("user get: decode habits: %w", err)
	}
	if err := json.Unmarshal([]byte(completedJSON), &rec.Completed); err != nil {
		return nil, fmt.Errorf("user get: decode completed: %w", err)
	}
	if last.Valid {
		rec.LastCompletedDate = last.String
	}
	return &rec, nil
}

// PutOptions controls write semantics.
type PutOptions struct {
	// Merge performs a field-level merge instead of a full overwrite when
	// the row already exists.
	Merge bool
}

// Put stores the record for username. With Merge set, fields absent from
// the write never clobber stored values; without it the row is replaced.
func (r *UserRepo) Put(ctx context.Context, username string, rec Record, opts PutOptions) error {
	if opts.Merge {
		return r.Update(ctx, username, rec.patch())
	}

	habitsJSON, err := json.Marshal(normalizeHabits(rec.Habits))
	if err != nil {
		return fmt.Errorf("user put: encode habits: %w", err)
	}
	completedJSON, err := json.Marshal(normalizeIDs(rec.Completed))
	if err != nil {
		return fmt.Errorf("user put: encode completed: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (username, habits, completed, xp, level, streak, last_completed_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			habits = excluded.habits,
			completed = excluded.completed,
			xp = excluded.xp,
			level = excluded.level,
			streak = excluded.streak,
			last_completed_date = excluded.last_completed_date
	`, username, string(habitsJSON), string(completedJSON), rec.XP, rec.Level, rec.Streak, nullableDate(rec.LastCompletedDate))
	if err != nil {
		return fmt.Errorf("user put: %w", err)
	}
	return nil
}

// Update applies a partial record inside a transaction. Fields the patch
// leaves nil keep their stored values; an absent row is created from the
// column defaults first.
func (r *UserRepo) Update(ctx context.Context, username string, p Patch) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO users (username) VALUES (?)`, username); err != nil {
			return fmt.Errorf("user ensure: %w", err)
		}

		var (
			sets []string
			args []any
		)
		if p.Habits != nil {
			b, err := json.Marshal(normalizeHabits(*p.Habits))
			if err != nil {
				return fmt.Errorf("user update: encode habits: %w", err)
			}
			sets = append(sets, "habits = ?")
			args = append(args, string(b))
		}
		if p.Completed != nil {
			b, err := json.Marshal(normalizeIDs(*p.Completed))
			if err != nil {
				return fmt.Errorf("user update: encode completed: %w", err)
			}
			sets = append(sets, "completed = ?")
			args = append(args, string(b))
		}
		if p.XP != nil {
			sets = append(sets, "xp = ?")
			args = append(args, *p.XP)
		}
		if p.Level != nil {
			sets = append(sets, "level = ?")
			args = append(args, *p.Level)
		}
		if p.Streak != nil {
			sets = append(sets, "streak = ?")
			args = append(args, *p.Streak)
		}
		if p.LastCompletedDate != nil {
			sets = append(sets, "last_completed_date = ?")
			args = append(args, nullableDate(*p.LastCompletedDate))
		}
		if len(sets) == 0 {
			return nil
		}

		args = append(args, username)
		if _, err := tx.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE username = ?`, args...); err != nil {
			return fmt.Errorf("user update: %w", err)
		}
		return nil
	})
}

// Delete removes a user record. The engine never calls this; it exists
// for maintenance from the provider side.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username); err != nil {
		return fmt.Errorf("user delete: %w", err)
	}
	return nil
}

func nullableDate(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeHabits keeps the habits column a JSON array even for nil input.
func normalizeHabits(habits []HabitEntry) []HabitEntry {
	if habits == nil {
		return []HabitEntry{}
	}
	return habits
}

func normalizeIDs(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
