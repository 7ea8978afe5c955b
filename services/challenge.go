package services

import (
	stdContext "context"
	"errors"
	"fmt"
	"time"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ChallengeService struct {
	context.DefaultService

	pgSvc    *PostgresService
	redisSvc *RedisService
}

const CHALLENGE_SVC = "challenge_svc"

// Challenge is one entry of the fixed daily roster.
type Challenge struct {
	ID          string
	Type        string
	Title       string
	Description string
	Requirement int
	RewardGems  int
	RewardCoins int
}

// challengeRoster is the fixed ordered roster the selector rotates through.
// Every user sees the same entry on a given calendar day.
var challengeRoster = []Challenge{
	{
		ID:          "element_hunt",
		Type:        shared.ChallengeTypeElements,
		Title:       "Element Hunt",
		Description: "Identify 10 elements by their symbol",
		Requirement: 10,
		RewardGems:  5,
		RewardCoins: 100,
	},
	{
		ID:          "quiz_marathon",
		Type:        shared.ChallengeTypeQuiz,
		Title:       "Quiz Marathon",
		Description: "Finish 3 quizzes today",
		Requirement: 3,
		RewardGems:  5,
	},
	{
		ID:          "high_scorer",
		Type:        shared.ChallengeTypeScore,
		Title:       "High Scorer",
		Description: "Score 80 or more on a single quiz",
		Requirement: 80,
		RewardGems:  8,
		RewardCoins: 50,
	},
	{
		ID:          "compound_builder",
		Type:        shared.ChallengeTypeCompounds,
		Title:       "Compound Builder",
		Description: "Assemble 5 compounds correctly",
		Requirement: 5,
		RewardGems:  6,
		RewardCoins: 75,
	},
	{
		ID:          "streak_keeper",
		Type:        shared.ChallengeTypeStreak,
		Title:       "Streak Keeper",
		Description: "Keep a streak of at least 3 days",
		Requirement: 3,
		RewardGems:  10,
	},
}

func (svc ChallengeService) Id() string {
	return CHALLENGE_SVC
}

func (svc *ChallengeService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChallengeService) Start() error {
	svc.pgSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// ==================== SELECTION RULES ====================

// todaysChallenge picks the roster entry for the calendar day. Selection is
// day-of-year modulo roster size, so the rotation is deterministic and needs
// no stored state.
func todaysChallenge(now time.Time) Challenge {
	index := now.YearDay() % len(challengeRoster)
	return challengeRoster[index]
}

// isCompletedToday reports whether last falls on the same calendar date as now.
func isCompletedToday(last *time.Time, now time.Time) bool {
	if last == nil {
		return false
	}
	y1, m1, d1 := last.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func challengeCacheKey(now time.Time) string {
	return fmt.Sprintf("challenge:%s", now.Format("2006-01-02"))
}

// challengeOfDay reads through the redis cache. Selection is deterministic,
// so a miss just recomputes and repopulates.
func (svc *ChallengeService) challengeOfDay(now time.Time) Challenge {
	ctx := stdContext.Background()
	key := challengeCacheKey(now)

	var cached Challenge
	if err := svc.redisSvc.GetJSON(ctx, key, &cached); err == nil && cached.ID != "" {
		return cached
	}

	challenge := todaysChallenge(now)
	if err := svc.redisSvc.Set(ctx, key, challenge, 24*time.Hour); err != nil {
		log.WithError(err).Warn("Challenge cache write failed")
	}
	return challenge
}

// WarmDailyCache precomputes the day's roster entry. Called by the scheduler
// at rotation time.
func (svc *ChallengeService) WarmDailyCache(now time.Time) Challenge {
	ctx := stdContext.Background()
	challenge := todaysChallenge(now)
	if err := svc.redisSvc.Set(ctx, challengeCacheKey(now), challenge, 24*time.Hour); err != nil {
		log.WithError(err).Warn("Challenge cache warm failed")
	}
	return challenge
}

// ==================== OPERATIONS ====================

func (svc *ChallengeService) TodaysChallenge(userID string, now time.Time) (*dto.ChallengeResponse, error) {
	challenge := svc.challengeOfDay(now)

	completed := false
	if userID != "" {
		progress, err := svc.pgSvc.GetProgress(userID)
		if err == nil {
			completed = isCompletedToday(progress.LastChallengeDate, now)
		}
	}

	return &dto.ChallengeResponse{
		ID:          challenge.ID,
		Type:        challenge.Type,
		Title:       challenge.Title,
		Description: challenge.Description,
		Requirement: challenge.Requirement,
		RewardGems:  challenge.RewardGems,
		RewardCoins: challenge.RewardCoins,
		Completed:   completed,
	}, nil
}

// CompleteChallenge validates the submission against today's roster entry
// and credits the reward once per calendar day.
func (svc *ChallengeService) CompleteChallenge(userID string, req dto.CompleteChallengeRequest, now time.Time) (*dto.CompleteChallengeResponse, error) {
	challenge := todaysChallenge(now)

	if req.Type != challenge.Type {
		return nil, shared.NewBadRequestError("Submitted type does not match today's challenge")
	}

	var resp *dto.CompleteChallengeResponse
	err := svc.pgSvc.Transaction(func(tx *gorm.DB) error {
		progress, err := svc.pgSvc.LockProgress(tx, userID)
		if err != nil {
			return err
		}

		if isCompletedToday(progress.LastChallengeDate, now) {
			return shared.NewConflictError("Today's challenge is already completed")
		}

		if req.Value < challenge.Requirement {
			return shared.NewInsufficientError("Challenge requirement not met", shortfallData(challenge.Requirement, req.Value))
		}

		progress.Gems += challenge.RewardGems
		progress.Coins += challenge.RewardCoins
		progress.ChallengesCompleted++
		progress.LastChallengeDate = &now

		if err := svc.pgSvc.SaveProgress(tx, progress); err != nil {
			return err
		}

		resp = &dto.CompleteChallengeResponse{
			ChallengeID:         challenge.ID,
			GemsEarned:          challenge.RewardGems,
			CoinsEarned:         challenge.RewardCoins,
			Gems:                progress.Gems,
			Coins:               progress.Coins,
			ChallengesCompleted: progress.ChallengesCompleted,
		}
		return nil
	})
	if err != nil {
		if _, ok := shared.GetAppError(err); ok {
			return nil, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Progress record not found")
		}
		return nil, shared.NewInternalError("Challenge completion failed", err)
	}

	log.WithFields(log.Fields{
		"user_id":   userID,
		"challenge": challenge.ID,
	}).Info("Daily challenge completed")

	return resp, nil
}
