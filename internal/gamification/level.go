package gamification

// XPPerLevel is the XP needed to advance one level.
const XPPerLevel = 200

// Progress summarises a user's XP standing.
type Progress struct {
	XPPoints    int      `json:"xp_points"`
	Level       int      `json:"level"`
	NextLevelXP int      `json:"next_level_xp"`
	ToNextLevel int      `json:"to_next_level"`
	Badges      []string `json:"badges"`
}

// Level returns the level reached with xp. Negative xp counts as zero.
func Level(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp / XPPerLevel
}

// ProgressFor builds the progress view for xp and badges.
func ProgressFor(xp int, badges []string) Progress {
	level := Level(xp)
	next := (level + 1) * XPPerLevel
	return Progress{
		XPPoints:    xp,
		Level:       level,
		NextLevelXP: next,
		ToNextLevel: next - max(xp, 0),
		Badges:      append([]string{}, badges...),
	}
}
