package services

import (
	"time"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/model"
	"github.com/chemquest-app/chemquest_api/shared"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	context.DefaultService

	pgSvc  *PostgresService
	jwtSvc *JWTService

	// newReferralCode overrides the code generator; nil means crypto/rand.
	newReferralCode func() string
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.pgSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

// Register creates the account and its progress record in one transaction,
// so a failed progress insert never strands a login-able user without a
// progress row. The progress row carries the freshly generated referral
// code; on a code collision the insert is retried with a new code up to a
// bounded attempt count.
func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if available, err := svc.pgSvc.IsEmailAvailable(req.Email); err != nil {
		return nil, shared.NewInternalError("Failed to check email availability", err)
	} else if !available {
		return nil, shared.NewConflictError("Email is already registered")
	}

	if available, err := svc.pgSvc.IsUsernameAvailable(req.Username); err != nil {
		return nil, shared.NewInternalError("Failed to check username availability", err)
	} else if !available {
		return nil, shared.NewConflictError("Username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError("Failed to hash password", err)
	}

	var user *model.User
	var progress *model.PlayerProgress
	err = svc.pgSvc.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = svc.pgSvc.CreateUser(tx, &model.User{
			Email:    req.Email,
			Username: req.Username,
			Password: string(hashed),
			Role:     model.RoleUser,
			IsActive: true,
		})
		if err != nil {
			return userCreateError(svc.pgSvc, err)
		}

		progress, err = svc.createProgressWithCode(tx, user.ID)
		return err
	})
	if err != nil {
		if _, ok := shared.GetAppError(err); ok {
			return nil, err
		}
		return nil, shared.NewInternalError("Registration failed", err)
	}

	log.WithFields(log.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return &dto.RegisterResponse{
		UserID:       user.ID,
		ReferralCode: progress.ReferralCode,
		Message:      "Registration successful",
	}, nil
}

// userCreateError maps a failed user insert. A unique-index violation means
// a concurrent registration won the race past the availability checks.
func userCreateError(pgSvc *PostgresService, err error) error {
	if pgSvc.IsDuplicateError(err) {
		return shared.NewConflictError("Email or username is already registered")
	}
	return shared.NewInternalError("Failed to create user", err)
}

func (svc *AuthService) createProgressWithCode(tx *gorm.DB, userID string) (*model.PlayerProgress, error) {
	genCode := svc.newReferralCode
	if genCode == nil {
		genCode = generateReferralCode
	}

	for attempt := 1; attempt <= shared.ReferralCodeMaxAttempts; attempt++ {
		progress := &model.PlayerProgress{
			UserID:       userID,
			Streak:       1,
			Rank:         shared.RankBronze,
			OwnedItems:   []byte("[]"),
			ReferralCode: genCode(),
		}

		// Savepoint per attempt so a code collision does not poison the
		// enclosing transaction.
		err := tx.Transaction(func(inner *gorm.DB) error {
			_, err := svc.pgSvc.CreateProgress(inner, progress)
			return err
		})
		if err == nil {
			return progress, nil
		}
		if !svc.pgSvc.IsDuplicateError(err) {
			return nil, shared.NewInternalError("Failed to create progress record", err)
		}

		log.WithFields(log.Fields{
			"user_id": userID,
			"attempt": attempt,
		}).Warn("Referral code collision, regenerating")
	}

	return nil, shared.NewInternalError("Referral code generation exhausted", nil)
}

func (svc *AuthService) Login(req dto.LoginRequest, clientIP string) (*dto.LoginResponse, error) {
	user, err := svc.pgSvc.GetUserByEmailOrUsername(req.EmailOrUsername)
	if err != nil {
		return nil, shared.NewUnauthorizedError("Invalid credentials")
	}

	if !user.IsActive {
		return nil, shared.NewForbiddenError("Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError("Invalid credentials")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, shared.NewInternalError("Failed to generate token", err)
	}

	if err := svc.pgSvc.UpdateLastLogin(user.ID, clientIP); err != nil {
		log.WithError(err).Warn("Failed to record last login")
	}

	now := time.Now()
	return &dto.LoginResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   pair.ExpiresIn,
		User: dto.UserInfo{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			Role:        user.Role,
			CreatedAt:   user.CreatedAt,
			LastLoginAt: &now,
		},
	}, nil
}

func (svc *AuthService) GetMe(userID string) (*dto.UserInfo, error) {
	user, err := svc.pgSvc.GetUserByID(userID)
	if err != nil {
		return nil, shared.NewNotFoundError("User not found")
	}

	return &dto.UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}, nil
}

// RequiredAuth verifies the bearer token and stores the user id in locals.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}
