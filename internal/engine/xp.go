package engine

// LevelXPStep is the per-level multiplier for the level-up threshold:
// finishing level N takes N*100 XP.
const LevelXPStep = 100

// XPRequiredForLevel returns the XP needed to finish the given level. XP
// is tracked within the current level, so the level-up comparison is
// always xp >= XPRequiredForLevel(level).
func XPRequiredForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * LevelXPStep
}

// ProgressPercent returns the fill ratio of the XP bar, clamped to [0, 1].
func ProgressPercent(s State) float64 {
	p := float64(s.XP) / float64(XPRequiredForLevel(s.Level))
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
