package domain

// LeaderboardEntry is one row of the global XP ranking. Avatar carries
// only the image when present; the server strips everything else.
type LeaderboardEntry struct {
	Username string  `json:"username"`
	Level    int     `json:"level"`
	XP       int     `json:"xp"`
	Avatar   *Avatar `json:"avatar,omitempty"`
}

// Friend is another player linked to the current user.
type Friend struct {
	ID       string  `json:"id,omitempty"`
	Username string  `json:"username"`
	Level    int     `json:"level"`
	XP       int     `json:"xp"`
	Avatar   *Avatar `json:"avatar,omitempty"`
}
