package handlers

import (
	"time"

	"github.com/chemquest-app/chemquest_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest, clientIP string) (*dto.LoginResponse, error)
	GetMe(userID string) (*dto.UserInfo, error)
}

type ProgressionServiceInterface interface {
	GetProgress(userID string) (*dto.ProgressResponse, error)
	CompleteQuiz(userID string, req dto.CompleteQuizRequest, now time.Time) (*dto.CompleteQuizResponse, error)
}

type ChallengeServiceInterface interface {
	TodaysChallenge(userID string, now time.Time) (*dto.ChallengeResponse, error)
	CompleteChallenge(userID string, req dto.CompleteChallengeRequest, now time.Time) (*dto.CompleteChallengeResponse, error)
}

type ReferralServiceInterface interface {
	GetInfo(userID string) (*dto.ReferralInfoResponse, error)
	Redeem(userID, code string) (*dto.RedeemReferralResponse, error)
}

type ShopServiceInterface interface {
	GetCatalog(userID string) (*dto.ShopCatalogResponse, error)
	Purchase(userID, itemID string) (*dto.PurchaseResponse, error)
}

type LeaderboardServiceInterface interface {
	GetLeaderboard(period string, limit int, userID string) (*dto.LeaderboardResponse, error)
}
