package services

import (
	"errors"
	"math"
	"time"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/model"
	"github.com/chemquest-app/chemquest_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProgressionService struct {
	context.DefaultService

	pgSvc *PostgresService
}

const PROGRESSION_SVC = "progression_svc"

func (svc ProgressionService) Id() string {
	return PROGRESSION_SVC
}

func (svc *ProgressionService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressionService) Start() error {
	svc.pgSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ==================== RANK RULES ====================

// rankFor maps cumulative XP to a tier. Thresholds are inclusive lower
// bounds; the highest qualifying tier wins.
func rankFor(xp int) string {
	switch {
	case xp >= shared.RankThresholdDiamond:
		return shared.RankDiamond
	case xp >= shared.RankThresholdPlatinum:
		return shared.RankPlatinum
	case xp >= shared.RankThresholdGold:
		return shared.RankGold
	case xp >= shared.RankThresholdSilver:
		return shared.RankSilver
	default:
		return shared.RankBronze
	}
}

// rankProgress reports the next tier and the XP still needed to reach it.
// At the top tier both are zero values.
func rankProgress(xp int) (string, int) {
	switch {
	case xp < shared.RankThresholdSilver:
		return shared.RankSilver, shared.RankThresholdSilver - xp
	case xp < shared.RankThresholdGold:
		return shared.RankGold, shared.RankThresholdGold - xp
	case xp < shared.RankThresholdPlatinum:
		return shared.RankPlatinum, shared.RankThresholdPlatinum - xp
	case xp < shared.RankThresholdDiamond:
		return shared.RankDiamond, shared.RankThresholdDiamond - xp
	default:
		return "", 0
	}
}

// ==================== STREAK RULES ====================

// nextStreak recomputes the daily streak from the previous activity time.
// Under 24h keeps the count, 24-48h (both bounds inclusive) extends it,
// beyond 48h resets to 1.
func nextStreak(lastActivity *time.Time, current int, now time.Time) int {
	if lastActivity == nil {
		return 1
	}
	if current < 1 {
		current = 1
	}

	hours := now.Sub(*lastActivity).Hours()
	switch {
	case hours < shared.StreakKeepWindowHours:
		return current
	case hours <= shared.StreakExtendWindowHours:
		return current + 1
	default:
		return 1
	}
}

func streakMultiplier(streak int) float64 {
	switch {
	case streak >= shared.StreakMultiplierHighDays:
		return shared.StreakMultiplierHigh
	case streak >= shared.StreakMultiplierMidDays:
		return shared.StreakMultiplierMid
	default:
		return shared.StreakMultiplierBase
	}
}

// ==================== XP RULES ====================

func quizXP(correctAnswers int, multiplier float64) int {
	return int(math.Floor(float64(correctAnswers)*shared.QuizXPPerCorrectAnswer*multiplier)) + shared.QuizCompletionBonusXP
}

// ==================== OPERATIONS ====================

// CompleteQuiz applies the quiz result to the user's record: recomputes the
// streak, credits XP through the streak multiplier plus the flat completion
// bonus, and rederives the rank. The whole read-modify-write runs under a
// row lock.
func (svc *ProgressionService) CompleteQuiz(userID string, req dto.CompleteQuizRequest, now time.Time) (*dto.CompleteQuizResponse, error) {
	if req.CorrectAnswers < 0 || req.TotalQuestions < 1 || req.CorrectAnswers > req.TotalQuestions {
		return nil, shared.NewBadRequestError("Correct answers must be between 0 and total questions")
	}

	var resp *dto.CompleteQuizResponse
	err := svc.pgSvc.Transaction(func(tx *gorm.DB) error {
		progress, err := svc.pgSvc.LockProgress(tx, userID)
		if err != nil {
			return err
		}

		streak := nextStreak(progress.LastActivityAt, progress.Streak, now)
		mult := streakMultiplier(streak)
		earned := quizXP(req.CorrectAnswers, mult)

		previousRank := progress.Rank
		progress.XP += earned
		progress.Rank = rankFor(progress.XP)
		progress.Streak = streak
		progress.LastActivityAt = &now

		if err := svc.pgSvc.SaveProgress(tx, progress); err != nil {
			return err
		}

		resp = &dto.CompleteQuizResponse{
			XPEarned:     earned,
			TotalXP:      progress.XP,
			Streak:       streak,
			Multiplier:   mult,
			Rank:         progress.Rank,
			PreviousRank: previousRank,
			RankChanged:  progress.Rank != previousRank,
		}
		return nil
	})
	if err != nil {
		return nil, svc.asAppError(err)
	}

	log.WithFields(log.Fields{
		"user_id":   userID,
		"xp_earned": resp.XPEarned,
		"streak":    resp.Streak,
	}).Info("Quiz completed")

	return resp, nil
}

func (svc *ProgressionService) GetProgress(userID string) (*dto.ProgressResponse, error) {
	progress, err := svc.pgSvc.GetProgress(userID)
	if err != nil {
		return nil, shared.NewNotFoundError("Progress record not found")
	}

	return toProgressResponse(progress), nil
}

func toProgressResponse(progress *model.PlayerProgress) *dto.ProgressResponse {
	nextRank, xpToNext := rankProgress(progress.XP)
	return &dto.ProgressResponse{
		UserID:              progress.UserID,
		XP:                  progress.XP,
		Rank:                progress.Rank,
		NextRank:            nextRank,
		XPToNextRank:        xpToNext,
		Streak:              progress.Streak,
		StreakMultiplier:    streakMultiplier(progress.Streak),
		Coins:               progress.Coins,
		Gems:                progress.Gems,
		OwnedItems:          progress.OwnedItemIDs(),
		ReferralCode:        progress.ReferralCode,
		ReferralCount:       progress.ReferralCount,
		ChallengesCompleted: progress.ChallengesCompleted,
		LastActivityAt:      progress.LastActivityAt,
	}
}

func (svc *ProgressionService) asAppError(err error) error {
	if _, ok := shared.GetAppError(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError("Progress record not found")
	}
	return shared.NewInternalError("Progress update failed", err)
}
