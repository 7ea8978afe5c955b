package dto

// ==================== LEADERBOARD DTOs ====================

type LeaderboardEntry struct {
	Position int    `json:"position" example:"1"`
	UserID   string `json:"user_id" example:"0190f7a0-5f3e-7cc4-a9e2-4f4f4f4f4f4f"`
	Username string `json:"username" example:"curiechem"`
	XP       int    `json:"xp" example:"5230"`
	Rank     string `json:"rank" example:"diamond"`
	Streak   int    `json:"streak" example:"14"`
}

type LeaderboardResponse struct {
	Period       string             `json:"period" example:"weekly"`
	Entries      []LeaderboardEntry `json:"entries"`
	UserPosition int                `json:"user_position,omitempty" example:"17"`
}
