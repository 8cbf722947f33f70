package engine

// StreakBonus is a one-shot XP reward granted the moment the streak
// counter reaches its threshold. Holding the count on later days does not
// re-trigger it; losing the streak and rebuilding it does.
type StreakBonus struct {
	Threshold int
	XP        int
	Message   string
}

var StreakBonuses = []StreakBonus{
	{Threshold: 3, XP: 10, Message: "🔥 3-Day Streak Bonus! +10 XP"},
	{Threshold: 7, XP: 50, Message: "🔥 7-Day Streak Bonus! +50 XP"},
}

func streakBonusFor(streak int) (StreakBonus, bool) {
	for _, b := range StreakBonuses {
		if b.Threshold == streak {
			return b, true
		}
	}
	return StreakBonus{}, false
}
