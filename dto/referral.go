package dto

// ==================== REFERRAL DTOs ====================

type RedeemReferralRequest struct {
	Code string `json:"code" validate:"required,len=6" example:"K7MX2Q"`
}

func (r RedeemReferralRequest) Validate() error {
	return GetValidator().Struct(r)
}

type RedeemReferralResponse struct {
	ReferrerUsername string `json:"referrer_username" example:"curiechem"`
	CoinsEarned      int    `json:"coins_earned" example:"500"`
	GemsEarned       int    `json:"gems_earned" example:"10"`
	Coins            int    `json:"coins" example:"1230"`
	Gems             int    `json:"gems" example:"52"`
}

type ReferralInfoResponse struct {
	ReferralCode  string `json:"referral_code" example:"K7MX2Q"`
	ReferralCount int    `json:"referral_count" example:"3"`
	Redeemed      bool   `json:"redeemed" example:"false"`
	RewardCoins   int    `json:"reward_coins" example:"500"`
	RewardGems    int    `json:"reward_gems" example:"10"`
}
