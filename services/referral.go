package services

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/model"
	"github.com/chemquest-app/chemquest_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReferralService struct {
	context.DefaultService

	pgSvc *PostgresService
}

const REFERRAL_SVC = "referral_svc"

func (svc ReferralService) Id() string {
	return REFERRAL_SVC
}

func (svc *ReferralService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ReferralService) Start() error {
	svc.pgSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ==================== CODE RULES ====================

// generateReferralCode returns 6 random characters from the restricted
// alphabet. 0/1/O/I are excluded to avoid visual ambiguity. Uniqueness is
// enforced by the store's unique index; callers retry on collision.
func generateReferralCode() string {
	alphabet := shared.ReferralCodeAlphabet
	code := make([]byte, shared.ReferralCodeLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			n = big.NewInt(0)
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code)
}

func normalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func isValidReferralCode(code string) bool {
	code = normalizeReferralCode(code)
	if len(code) != shared.ReferralCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(shared.ReferralCodeAlphabet, rune(code[i])) {
			return false
		}
	}
	return true
}

// ==================== OPERATIONS ====================

func (svc *ReferralService) GetInfo(userID string) (*dto.ReferralInfoResponse, error) {
	progress, err := svc.pgSvc.GetProgress(userID)
	if err != nil {
		return nil, shared.NewNotFoundError("Progress record not found")
	}

	return &dto.ReferralInfoResponse{
		ReferralCode:  progress.ReferralCode,
		ReferralCount: progress.ReferralCount,
		Redeemed:      progress.ReferredBy != nil,
		RewardCoins:   shared.ReferralRewardCoins,
		RewardGems:    shared.ReferralRewardGems,
	}, nil
}

// Redeem credits both parties exactly once. Both progress rows are locked
// inside one transaction, in user-id order so two concurrent redemptions
// cannot deadlock; either both updates commit or neither does.
func (svc *ReferralService) Redeem(userID, code string) (*dto.RedeemReferralResponse, error) {
	if !isValidReferralCode(code) {
		return nil, shared.NewBadRequestError("Referral code must be 6 characters from A-Z and 2-9")
	}
	code = normalizeReferralCode(code)

	// Already-referred wins over an unknown code; the locked recheck below
	// still guards the race.
	progress, err := svc.pgSvc.GetProgress(userID)
	if err != nil {
		return nil, shared.NewNotFoundError("Progress record not found")
	}
	if progress.ReferredBy != nil {
		return nil, shared.NewConflictError("A referral code has already been redeemed on this account")
	}

	var resp *dto.RedeemReferralResponse
	err = svc.pgSvc.Transaction(func(tx *gorm.DB) error {
		referrerRef, err := svc.lookupReferrer(tx, code)
		if err != nil {
			return err
		}
		if referrerRef == userID {
			return shared.NewConflictError("You cannot redeem your own referral code")
		}

		// Lock both rows in user-id order.
		first, second := userID, referrerRef
		if second < first {
			first, second = second, first
		}
		locked := map[string]*model.PlayerProgress{}
		for _, id := range []string{first, second} {
			progress, err := svc.pgSvc.LockProgress(tx, id)
			if err != nil {
				return err
			}
			locked[id] = progress
		}
		current, referrer := locked[userID], locked[referrerRef]

		if current.ReferredBy != nil {
			return shared.NewConflictError("A referral code has already been redeemed on this account")
		}
		if referrer.ReferralCode != code {
			// Code changed between lookup and lock.
			return gorm.ErrRecordNotFound
		}

		current.ReferredBy = &referrer.UserID
		current.Coins += shared.ReferralRewardCoins
		current.Gems += shared.ReferralRewardGems

		referrer.Coins += shared.ReferralRewardCoins
		referrer.Gems += shared.ReferralRewardGems
		referrer.ReferralCount++

		if err := svc.pgSvc.SaveProgress(tx, current); err != nil {
			return err
		}
		if err := svc.pgSvc.SaveProgress(tx, referrer); err != nil {
			return err
		}

		referrerUser, err := svc.pgSvc.GetUserByID(referrer.UserID)
		if err != nil {
			return err
		}

		resp = &dto.RedeemReferralResponse{
			ReferrerUsername: referrerUser.Username,
			CoinsEarned:      shared.ReferralRewardCoins,
			GemsEarned:       shared.ReferralRewardGems,
			Coins:            current.Coins,
			Gems:             current.Gems,
		}
		return nil
	})
	if err != nil {
		if _, ok := shared.GetAppError(err); ok {
			return nil, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Referral code not found")
		}
		return nil, shared.NewInternalError("Referral redemption failed", err)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"code":    code,
	}).Info("Referral code redeemed")

	return resp, nil
}

func (svc *ReferralService) lookupReferrer(tx *gorm.DB, code string) (string, error) {
	var progress model.PlayerProgress
	if err := tx.Select("user_id").Where("referral_code = ?", code).First(&progress).Error; err != nil {
		return "", err
	}
	return progress.UserID, nil
}
