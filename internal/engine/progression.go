package engine

// CompleteHabit applies a habit-completion event to the state for the
// given calendar day. It is pure: no clock reads, no I/O. Re-completing a
// habit already checked today is a no-op that returns the input state and
// no notifications.
func CompleteHabit(s State, habit Habit, today Date) (State, []Notification) {
	if s.IsCompleted(habit.ID) {
		return s, nil
	}

	next := s.clone()
	next.CompletedToday = append(next.CompletedToday, habit.ID)
	next.XP += habit.XPValue

	var notes []Notification

	// The streak transitions only on the first completion of a calendar
	// day; the 2nd..Nth completion the same day leaves the counter alone.
	// That also scopes the bonus check to the moment the count changed.
	if s.LastCompleted != today {
		if !s.LastCompleted.IsZero() && s.LastCompleted == today.AddDays(-1) {
			next.Streak = s.Streak + 1
		} else {
			next.Streak = 1
		}
		if bonus, ok := streakBonusFor(next.Streak); ok {
			next.XP += bonus.XP
			notes = append(notes, Notification{
				Kind:    NotificationStreakBonus,
				Message: bonus.Message,
				BonusXP: bonus.XP,
			})
		}
	}
	next.LastCompleted = today

	var levelUps []Notification
	next, levelUps = resolveLevelUps(next)
	return next, append(notes, levelUps...)
}

// resolveLevelUps folds accumulated XP into level-ups, one notification
// per level gained. The loop form keeps the xp < level*100 invariant for
// arbitrarily large single-event gains; with the default catalog it runs
// at most once per completion.
func resolveLevelUps(s State) (State, []Notification) {
	var notes []Notification
	for s.XP >= XPRequiredForLevel(s.Level) {
		s.XP -= XPRequiredForLevel(s.Level)
		s.Level++
		notes = append(notes, Notification{
			Kind:    NotificationLevelUp,
			Message: "🎉 Level Up!",
		})
	}
	return s, notes
}

// RolloverDay clears the daily checklist once the calendar day moves past
// LastCompleted. XP, level and streak carry over untouched; a streak gap
// is only ever detected by the next completion. Repeated calls on the
// same day are no-ops after the first clear.
func RolloverDay(s State, today Date) State {
	if s.LastCompleted == today || len(s.CompletedToday) == 0 {
		return s
	}
	next := s.clone()
	next.CompletedToday = nil
	return next
}
