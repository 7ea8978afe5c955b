package shared

const (
	UserID = "user_id"

	RankBronze   = "bronze"
	RankSilver   = "silver"
	RankGold     = "gold"
	RankPlatinum = "platinum"
	RankDiamond  = "diamond"

	ChallengeTypeQuiz      = "quiz"
	ChallengeTypeScore     = "score"
	ChallengeTypeStreak    = "streak"
	ChallengeTypeElements  = "elements"
	ChallengeTypeCompounds = "compounds"

	ItemTypeCosmetic = "cosmetic"
	ItemTypePowerUp  = "power_up"
	ItemTypeBadge    = "badge"
)

// Rank thresholds: inclusive lower bound of total XP per tier.
const (
	RankThresholdSilver   = 500
	RankThresholdGold     = 1500
	RankThresholdPlatinum = 3000
	RankThresholdDiamond  = 5000
)

// Streak windows in hours since last qualifying activity.
const (
	StreakKeepWindowHours   = 24
	StreakExtendWindowHours = 48
)

// Streak multiplier tiers.
const (
	StreakMultiplierHighDays = 7
	StreakMultiplierMidDays  = 4
)

const (
	StreakMultiplierHigh = 1.2
	StreakMultiplierMid  = 1.1
	StreakMultiplierBase = 1.0
)

// Quiz rewards.
const (
	QuizXPPerCorrectAnswer = 10
	QuizCompletionBonusXP  = 20
)

// Referral economy.
const (
	ReferralCodeLength      = 6
	ReferralCodeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ReferralCodeMaxAttempts = 5
	ReferralRewardCoins     = 500
	ReferralRewardGems      = 10
)
