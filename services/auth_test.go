package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/model"
	"github.com/chemquest-app/chemquest_api/shared"
)

// newTestStore backs a PostgresService with an in-memory sqlite database.
// The DSN is namespaced per test so parallel tests never share state.
func newTestStore(t *testing.T) *PostgresService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.PlayerProgress{}))

	return &PostgresService{db: db}
}

func seedAccount(t *testing.T, pgSvc *PostgresService, email, username, referralCode string, referredBy *string) string {
	t.Helper()

	var userID string
	require.NoError(t, pgSvc.Transaction(func(tx *gorm.DB) error {
		user, err := pgSvc.CreateUser(tx, &model.User{
			Email:    email,
			Username: username,
			Password: "irrelevant",
			Role:     model.RoleUser,
			IsActive: true,
		})
		if err != nil {
			return err
		}
		userID = user.ID

		_, err = pgSvc.CreateProgress(tx, &model.PlayerProgress{
			UserID:       user.ID,
			Streak:       1,
			Rank:         shared.RankBronze,
			OwnedItems:   []byte("[]"),
			ReferralCode: referralCode,
			ReferredBy:   referredBy,
		})
		return err
	}))
	return userID
}

func TestRegisterCreatesUserAndProgress(t *testing.T) {
	pgSvc := newTestStore(t)
	authSvc := &AuthService{pgSvc: pgSvc}

	resp, err := authSvc.Register(dto.RegisterRequest{
		Email:    "marie@curie.edu",
		Username: "mariec",
		Password: "Polonium#1898",
	})
	require.NoError(t, err)
	assert.Len(t, resp.ReferralCode, shared.ReferralCodeLength)

	user, err := pgSvc.GetUserByID(resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, "mariec", user.Username)

	progress, err := pgSvc.GetProgress(resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, resp.ReferralCode, progress.ReferralCode)
	assert.Equal(t, shared.RankBronze, progress.Rank)
	assert.Equal(t, 1, progress.Streak)
}

func TestRegisterRollsBackUserOnCodeExhaustion(t *testing.T) {
	pgSvc := newTestStore(t)
	seedAccount(t, pgSvc, "existing@x.com", "existing", "AB23CD", nil)

	authSvc := &AuthService{
		pgSvc: pgSvc,
		// Every attempt collides with the seeded code.
		newReferralCode: func() string { return "AB23CD" },
	}

	_, err := authSvc.Register(dto.RegisterRequest{
		Email:    "fresh@x.com",
		Username: "freshuser",
		Password: "Polonium#1898",
	})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)

	// The user row must not survive the failed registration.
	var count int64
	require.NoError(t, pgSvc.Db().Model(&model.User{}).Where("email = ?", "fresh@x.com").Count(&count).Error)
	assert.Zero(t, count, "failed registration must leave no orphan user")

	available, err := pgSvc.IsEmailAvailable("fresh@x.com")
	require.NoError(t, err)
	assert.True(t, available, "a failed registration must be retryable")
}

func TestRegisterRetriesOnCodeCollision(t *testing.T) {
	pgSvc := newTestStore(t)
	seedAccount(t, pgSvc, "existing@x.com", "existing", "AB23CD", nil)

	codes := []string{"AB23CD", "XY89ZW"}
	authSvc := &AuthService{
		pgSvc: pgSvc,
		newReferralCode: func() string {
			code := codes[0]
			if len(codes) > 1 {
				codes = codes[1:]
			}
			return code
		},
	}

	resp, err := authSvc.Register(dto.RegisterRequest{
		Email:    "fresh@x.com",
		Username: "freshuser",
		Password: "Polonium#1898",
	})
	require.NoError(t, err)
	assert.Equal(t, "XY89ZW", resp.ReferralCode, "first collision must regenerate, not fail")
}

func TestUserCreateErrorMapsDuplicateToConflict(t *testing.T) {
	pgSvc := &PostgresService{}

	err := userCreateError(pgSvc, gorm.ErrDuplicatedKey)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)

	err = userCreateError(pgSvc, errors.New("connection reset"))
	appErr, ok = shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
}
