package domain

// Stats is the read-model snapshot behind the dashboard and profile
// pages. It is derived server-side and re-fetched after mutations,
// never mutated locally.
type Stats struct {
	Level           int      `json:"level"`
	XP              int      `json:"xp"`
	XPToNextLevel   int      `json:"xp_to_next_level"`
	Gold            int      `json:"gold"`
	HP              int      `json:"hp"`
	MaxHP           int      `json:"max_hp"`
	Streak          int      `json:"streak"`
	CompletedQuests int      `json:"completed_quests"`
	ActiveQuests    int      `json:"active_quests"`
	Badges          []string `json:"badges"`
}

// XPPercent returns progress toward the next level in [0, 1].
// Recomputed on every call from the current snapshot.
func (s Stats) XPPercent() float64 {
	total := s.XP + s.XPToNextLevel
	if total <= 0 {
		return 0
	}
	return float64(s.XP) / float64(total)
}
