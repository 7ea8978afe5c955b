package services

import (
	stdContext "context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chemquest-app/chemquest_api/shared"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	redisSvc *RedisService
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.initDefaultConfigs()
	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		"login": {
			EndpointType: "login",
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			Description:  "Login attempts rate limit",
			IsActive:     true,
		},
		"register": {
			EndpointType: "register",
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			Description:  "Registration rate limit",
			IsActive:     true,
		},
		"quiz_complete": {
			EndpointType: "quiz_complete",
			MaxRequests:  60,
			WindowSize:   time.Hour,
			Description:  "Quiz completion rate limit",
			IsActive:     true,
		},
		"challenge_complete": {
			EndpointType: "challenge_complete",
			MaxRequests:  10,
			WindowSize:   time.Hour,
			Description:  "Daily challenge submission rate limit",
			IsActive:     true,
		},
		"referral_redeem": {
			EndpointType: "referral_redeem",
			MaxRequests:  10,
			WindowSize:   time.Hour,
			Description:  "Referral redemption rate limit",
			IsActive:     true,
		},
		"shop_purchase": {
			EndpointType: "shop_purchase",
			MaxRequests:  30,
			WindowSize:   time.Hour,
			Description:  "Shop purchase rate limit",
			IsActive:     true,
		},
	}
}

// ==================== CORE RATE LIMITING LOGIC ====================

// IsAllowed applies a fixed window counter in redis keyed by identifier and
// endpoint type. The first hit in a window sets the TTL; subsequent hits
// share it.
func (svc *RateLimitService) IsAllowed(identifier, endpointType string) (bool, int, time.Duration, error) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()

	if !exists || !config.IsActive {
		return true, -1, 0, nil
	}

	ctx := stdContext.Background()
	key := fmt.Sprintf("ratelimit:%s:%s", endpointType, identifier)

	count, err := svc.redisSvc.Increment(ctx, key)
	if err != nil {
		return false, 0, 0, err
	}

	if count == 1 {
		if err := svc.redisSvc.Expire(ctx, key, config.WindowSize); err != nil {
			return false, 0, 0, err
		}
	}

	ttl, err := svc.redisSvc.TTL(ctx, key)
	if err != nil {
		ttl = config.WindowSize
	}

	remaining := config.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return count <= int64(config.MaxRequests), remaining, ttl, nil
}

// ==================== MIDDLEWARE ====================

// RateLimit creates a rate limiting middleware for the given endpoint type.
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := svc.getIdentifier(c)

		allowed, remaining, ttl, err := svc.IsAllowed(identifier, endpointType)
		if err != nil {
			log.Printf("Rate limit check error for %s (%s): %v", endpointType, identifier, err)
			// Continue with request on error to avoid blocking users due to system issues
			return c.Next()
		}

		if remaining >= 0 {
			c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}
		if ttl > 0 {
			c.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
		}

		if !allowed {
			if ttl > 0 {
				c.Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			}
			return shared.ResponseJSON(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
		}

		return c.Next()
	}
}

func (svc *RateLimitService) getIdentifier(c *fiber.Ctx) string {
	if userID := c.Locals(shared.UserID); userID != nil {
		if id, ok := userID.(string); ok && id != "" {
			return id
		}
	}
	return getClientIP(c)
}

func getClientIP(c *fiber.Ctx) string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" {
				return ip
			}
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return c.IP()
}
