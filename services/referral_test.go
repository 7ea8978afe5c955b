package services

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemquest-app/chemquest_api/shared"
)

func TestGenerateReferralCode(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 200; i++ {
		code := generateReferralCode()
		require.Len(t, code, shared.ReferralCodeLength)

		for _, r := range code {
			assert.Contains(t, shared.ReferralCodeAlphabet, string(r))
		}

		seen[code] = true
	}

	// 200 draws from a 32^6 space colliding down to a handful would
	// indicate a broken random source.
	assert.Greater(t, len(seen), 190)
}

func TestReferralCodeAlphabetExcludesAmbiguous(t *testing.T) {
	for _, ambiguous := range []string{"0", "1", "O", "I"} {
		assert.NotContains(t, shared.ReferralCodeAlphabet, ambiguous)
	}
}

func TestNormalizeReferralCode(t *testing.T) {
	assert.Equal(t, "AB23CD", normalizeReferralCode(" ab23cd "))
	assert.Equal(t, "XYZ789", normalizeReferralCode("xyz789"))
}

func TestIsValidReferralCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"valid uppercase", "AB23CD", true},
		{"all letters", "ABCDEF", true},
		{"too short", "AB23C", false},
		{"too long", "AB23CDE", false},
		{"contains zero", "ABC0DE", false},
		{"contains letter I", "ABCIDE", false},
		{"contains letter O", "ABCODE", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isValidReferralCode(tt.code))
		})
	}
}

func TestIsValidReferralCodeAfterNormalization(t *testing.T) {
	code := normalizeReferralCode("ab23cd")
	assert.True(t, isValidReferralCode(code))
	assert.True(t, strings.ToUpper(code) == code)
}

func TestRedeemAlreadyReferredWinsOverUnknownCode(t *testing.T) {
	pgSvc := newTestStore(t)

	referrerID := "someone-else"
	userID := seedAccount(t, pgSvc, "a@x.com", "usera", "AB23CD", &referrerID)

	referralSvc := &ReferralService{pgSvc: pgSvc}

	// The code does not exist anywhere; the prior redemption must still win.
	_, err := referralSvc.Redeem(userID, "ZZZZZZ")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
}
