package services

import (
	"context"
	"fmt"
	"time"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/shared"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

type LeaderboardService struct {
	appContext.DefaultService

	pgSvc    *PostgresService
	redisSvc *RedisService
}

const LEADERBOARD_SVC = "leaderboard_svc"

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all_time"

	leaderboardCacheTTL  = 5 * time.Minute
	defaultLeaderboardN  = 50
	leaderboardKeyPrefix = "leaderboard"
)

func (svc LeaderboardService) Id() string {
	return LEADERBOARD_SVC
}

func (svc *LeaderboardService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *LeaderboardService) Start() error {
	svc.pgSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *LeaderboardService) GetLeaderboard(period string, limit int, userID string) (*dto.LeaderboardResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLeaderboardN
	}

	entries, err := svc.entriesFor(period, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.LeaderboardResponse{
		Period:  period,
		Entries: entries,
	}

	if userID != "" {
		position, err := svc.pgSvc.GetUserPosition(userID)
		if err == nil {
			resp.UserPosition = position
		}
	}

	return resp, nil
}

func (svc *LeaderboardService) entriesFor(period string, limit int) ([]dto.LeaderboardEntry, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("%s:%s:%d", leaderboardKeyPrefix, period, limit)

	var cached []dto.LeaderboardEntry
	if err := svc.redisSvc.GetJSON(ctx, cacheKey, &cached); err != nil {
		log.WithError(err).Warn("Leaderboard cache read failed")
	} else if len(cached) > 0 {
		return cached, nil
	}

	var rows []LeaderboardRow
	var err error
	switch period {
	case PeriodWeekly:
		rows, err = svc.pgSvc.GetWeeklyLeaderboard(limit)
	case PeriodMonthly:
		rows, err = svc.pgSvc.GetMonthlyLeaderboard(limit)
	case PeriodAllTime:
		rows, err = svc.pgSvc.GetAllTimeLeaderboard(limit)
	default:
		return nil, shared.NewBadRequestError("Period must be weekly, monthly or all_time")
	}
	if err != nil {
		return nil, shared.NewInternalError("Failed to load leaderboard", err)
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, dto.LeaderboardEntry{
			Position: i + 1,
			UserID:   row.UserID,
			Username: row.Username,
			XP:       row.XP,
			Rank:     row.Rank,
			Streak:   row.Streak,
		})
	}

	if err := svc.redisSvc.Set(ctx, cacheKey, entries, leaderboardCacheTTL); err != nil {
		log.WithError(err).Warn("Leaderboard cache write failed")
	}

	return entries, nil
}

// RefreshCaches repopulates the default leaderboard views. Invoked by the
// scheduler so reads near the top of the hour stay warm.
func (svc *LeaderboardService) RefreshCaches() error {
	ctx := context.Background()
	for _, period := range []string{PeriodWeekly, PeriodMonthly, PeriodAllTime} {
		cacheKey := fmt.Sprintf("%s:%s:%d", leaderboardKeyPrefix, period, defaultLeaderboardN)
		if err := svc.redisSvc.Delete(ctx, cacheKey); err != nil {
			return err
		}
		if _, err := svc.entriesFor(period, defaultLeaderboardN); err != nil {
			return err
		}
	}
	return nil
}
