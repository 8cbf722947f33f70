package engine

// Habit is a static catalog entry. Gameplay never edits habits; the user
// only marks them complete.
type Habit struct {
	ID      int
	Name    string
	XPValue int
}

// State is the per-user progression record. Transition functions treat it
// as a value and return a new State, so the presentation layer owns the
// single mutable reference.
type State struct {
	CompletedToday []int
	XP             int
	Level          int
	Streak         int
	LastCompleted  Date // zero when no completion was ever recorded
}

// NewState returns the default state for a first-time user.
func NewState() State {
	return State{Level: 1}
}

// IsCompleted reports whether the habit was already completed today.
func (s State) IsCompleted(habitID int) bool {
	for _, id := range s.CompletedToday {
		if id == habitID {
			return true
		}
	}
	return false
}

// clone copies the state with its own CompletedToday backing array so
// transitions never alias the caller's slice.
func (s State) clone() State {
	next := s
	next.CompletedToday = append([]int(nil), s.CompletedToday...)
	return next
}

type NotificationKind string

const (
	NotificationLevelUp     NotificationKind = "level_up"
	NotificationStreakBonus NotificationKind = "streak_bonus"
)

// Notification is a transient banner for the presentation layer to render
// and auto-dismiss. It carries no state the engine depends on.
type Notification struct {
	Kind    NotificationKind
	Message string
	BonusXP int
}
