package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/chemquest-app/chemquest_api/services/handlers"
	"github.com/chemquest-app/chemquest_api/shared"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

type HttpService struct {
	context.DefaultService

	authSvc        *AuthService
	progressionSvc *ProgressionService
	challengeSvc   *ChallengeService
	referralSvc    *ReferralService
	shopSvc        *ShopService
	leaderboardSvc *LeaderboardService
	rateLimitSvc   *RateLimitService
	monitoringSvc  *MonitoringService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.progressionSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)
	svc.referralSvc = svc.Service(REFERRAL_SVC).(*ReferralService)
	svc.shopSvc = svc.Service(SHOP_SVC).(*ShopService)
	svc.leaderboardSvc = svc.Service(LEADERBOARD_SVC).(*LeaderboardService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.app = fiber.New(fiber.Config{
		ErrorHandler: svc.errorHandler,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes()

	log.Printf("HTTP server listening on port %d", svc.port)
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) registerRoutes() {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	progressHandler := handlers.NewProgressHandler(svc.progressionSvc)
	challengeHandler := handlers.NewChallengeHandler(svc.challengeSvc)
	referralHandler := handlers.NewReferralHandler(svc.referralSvc)
	shopHandler := handlers.NewShopHandler(svc.shopSvc)
	leaderboardHandler := handlers.NewLeaderboardHandler(svc.leaderboardSvc)

	svc.app.Get("/ping", svc.ping)

	v1 := svc.app.Group("/api/v1")
	auth := svc.authSvc.RequiredAuth()

	v1.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)
	v1.Get("/me", auth, authHandler.Me)

	v1.Get("/progress", auth, progressHandler.GetProgress)
	v1.Post("/quiz/complete", auth, svc.rateLimitSvc.RateLimit("quiz_complete"), progressHandler.CompleteQuiz)

	v1.Get("/challenge/today", auth, challengeHandler.TodaysChallenge)
	v1.Post("/challenge/complete", auth, svc.rateLimitSvc.RateLimit("challenge_complete"), challengeHandler.CompleteChallenge)

	v1.Get("/referral", auth, referralHandler.GetInfo)
	v1.Post("/referral/redeem", auth, svc.rateLimitSvc.RateLimit("referral_redeem"), referralHandler.Redeem)

	v1.Get("/shop", auth, shopHandler.GetCatalog)
	v1.Post("/shop/purchase", auth, svc.rateLimitSvc.RateLimit("shop_purchase"), shopHandler.Purchase)

	v1.Get("/leaderboard/:period", auth, leaderboardHandler.GetLeaderboard)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseInternalError(c, err)
}
