package storage

// HabitEntry mirrors a catalog habit inside the persisted record.
type HabitEntry struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	XPValue int    `json:"xpValue"`
}

// Record is the full per-username persistence record:
// {habits, completed, xp, level, streak, lastCompletedDate}.
type Record struct {
	Habits            []HabitEntry `json:"habits"`
	Completed         []int        `json:"completed"`
	XP                int          `json:"xp"`
	Level             int          `json:"level"`
	Streak            int          `json:"streak"`
	LastCompletedDate string       `json:"lastCompletedDate"` // ISO date; empty when never completed
}

// Patch is a partial record update. Nil fields are left untouched by
// merge writes, so a partial write never clobbers unrelated columns.
type Patch struct {
	Habits            *[]HabitEntry
	Completed         *[]int
	XP                *int
	Level             *int
	Streak            *int
	LastCompletedDate *string
}

func (r Record) patch() Patch {
	habits := r.Habits
	completed := r.Completed
	xp := r.XP
	level := r.Level
	streak := r.Streak
	last := r.LastCompletedDate
	return Patch{
		Habits:            &habits,
		Completed:         &completed,
		XP:                &xp,
		Level:             &level,
		Streak:            &streak,
		LastCompletedDate: &last,
	}
}
