package dto

// ==================== DAILY CHALLENGE DTOs ====================

type ChallengeResponse struct {
	ID          string `json:"id" example:"element_hunt"`
	Type        string `json:"type" example:"elements"`
	Title       string `json:"title" example:"Element Hunt"`
	Description string `json:"description" example:"Identify 10 elements by symbol"`
	Requirement int    `json:"requirement" example:"10"`
	RewardGems  int    `json:"reward_gems" example:"5"`
	RewardCoins int    `json:"reward_coins" example:"100"`
	Completed   bool   `json:"completed" example:"false"`
}

type CompleteChallengeRequest struct {
	Type  string `json:"type" validate:"required" example:"elements"`
	Value int    `json:"value" validate:"min=0" example:"12"`
}

func (r CompleteChallengeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CompleteChallengeResponse struct {
	ChallengeID         string `json:"challenge_id" example:"element_hunt"`
	GemsEarned          int    `json:"gems_earned" example:"5"`
	CoinsEarned         int    `json:"coins_earned" example:"100"`
	Gems                int    `json:"gems" example:"47"`
	Coins               int    `json:"coins" example:"830"`
	ChallengesCompleted int    `json:"challenges_completed" example:"13"`
}
