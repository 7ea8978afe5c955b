package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

type SchedulerService struct {
	context.DefaultService

	leaderboardSvc *LeaderboardService
	challengeSvc   *ChallengeService

	sched gocron.Scheduler
}

const SCHEDULER_SVC = "scheduler_svc"

func (svc SchedulerService) Id() string {
	return SCHEDULER_SVC
}

func (svc *SchedulerService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SchedulerService) Start() error {
	svc.leaderboardSvc = svc.Service(LEADERBOARD_SVC).(*LeaderboardService)
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)

	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	svc.sched = sched

	// Every 5 minutes: keep the default leaderboard views warm
	_, err = sched.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			if err := svc.leaderboardSvc.RefreshCaches(); err != nil {
				log.WithError(err).Warn("Leaderboard cache refresh failed")
			}
		}),
	)
	if err != nil {
		return err
	}

	// Midnight UTC: precompute the new day's challenge cache entry
	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			challenge := svc.challengeSvc.WarmDailyCache(time.Now().UTC())
			log.WithFields(log.Fields{
				"challenge": challenge.ID,
				"type":      challenge.Type,
			}).Info("Daily challenge rotated")
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Println("Scheduler started")
	return nil
}

func (svc *SchedulerService) Shutdown() {
	if svc.sched != nil {
		_ = svc.sched.Shutdown()
	}
}
