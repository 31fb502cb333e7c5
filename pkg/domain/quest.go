package domain

// Quest difficulties, in ascending order.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties is the cycle order for the quest form.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Categories is the cycle order for quest categories. The study category
// unlocks quiz verification; everything else offers photo proof.
var Categories = []string{"productivity", "fitness", "study", "health", "habits"}

// QuestTypes is the cycle order for quest recurrence kinds.
var QuestTypes = []string{"daily", "weekly", "one-time"}

// ValidDifficulty reports whether d is a recognized difficulty.
func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is a recognized category.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Quest is a task with XP and gold rewards, tracked server-side as
// active or completed. The client never flips that status locally; it
// re-fetches after every mutation.
type Quest struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	QuestType   string `json:"quest_type"`
	Difficulty  string `json:"difficulty"`
	XPReward    int    `json:"xp_reward"`
	GoldReward  int    `json:"gold_reward"`
	Category    string `json:"category"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// CompletionReward is the server's response to completing a quest.
// NewLevel is only meaningful when LevelUp is true.
type CompletionReward struct {
	XPGained   int  `json:"xp_gained"`
	GoldGained int  `json:"gold_gained"`
	LevelUp    bool `json:"level_up"`
	NewLevel   int  `json:"new_level"`
	NewStreak  int  `json:"new_streak"`
}
