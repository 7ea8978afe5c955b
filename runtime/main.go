package main

import (
	"github.com/chemquest-app/chemquest_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.JWTService{},
		&services.MonitoringService{},
		&services.RateLimitService{},

		&services.AuthService{},
		&services.ProgressionService{},
		&services.ChallengeService{},
		&services.ReferralService{},
		&services.ShopService{},
		&services.LeaderboardService{},
		&services.SchedulerService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
