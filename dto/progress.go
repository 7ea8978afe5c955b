package dto

import "time"

// ==================== PROGRESS DTOs ====================

type ProgressResponse struct {
	UserID              string     `json:"user_id" example:"0190f7a0-5f3e-7cc4-a9e2-4f4f4f4f4f4f"`
	XP                  int        `json:"xp" example:"1250"`
	Rank                string     `json:"rank" example:"silver"`
	NextRank            string     `json:"next_rank,omitempty" example:"gold"`
	XPToNextRank        int        `json:"xp_to_next_rank" example:"250"`
	Streak              int        `json:"streak" example:"5"`
	StreakMultiplier    float64    `json:"streak_multiplier" example:"1.1"`
	Coins               int        `json:"coins" example:"730"`
	Gems                int        `json:"gems" example:"42"`
	OwnedItems          []string   `json:"owned_items"`
	ReferralCode        string     `json:"referral_code" example:"K7MX2Q"`
	ReferralCount       int        `json:"referral_count" example:"3"`
	ChallengesCompleted int        `json:"challenges_completed" example:"12"`
	LastActivityAt      *time.Time `json:"last_activity_at,omitempty" example:"2026-01-15T10:30:00Z"`
}

type CompleteQuizRequest struct {
	CorrectAnswers int `json:"correct_answers" validate:"min=0" example:"8"`
	TotalQuestions int `json:"total_questions" validate:"required,min=1" example:"10"`
}

func (r CompleteQuizRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CompleteQuizResponse struct {
	XPEarned     int     `json:"xp_earned" example:"116"`
	TotalXP      int     `json:"total_xp" example:"1366"`
	Streak       int     `json:"streak" example:"6"`
	Multiplier   float64 `json:"multiplier" example:"1.2"`
	Rank         string  `json:"rank" example:"silver"`
	PreviousRank string  `json:"previous_rank" example:"silver"`
	RankChanged  bool    `json:"rank_changed" example:"false"`
}
