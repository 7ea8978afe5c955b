package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Email:    "marie@curie.edu",
		Username: "mariec",
		Password: "Polonium#1898",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
	}{
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"missing username", func(r *RegisterRequest) { r.Username = "" }},
		{"no uppercase", func(r *RegisterRequest) { r.Password = "polonium#1898" }},
		{"no special char", func(r *RegisterRequest) { r.Password = "Polonium1898" }},
		{"too short", func(r *RegisterRequest) { r.Password = "Po#1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCompleteQuizRequestValidate(t *testing.T) {
	assert.NoError(t, CompleteQuizRequest{CorrectAnswers: 8, TotalQuestions: 10}.Validate())
	assert.NoError(t, CompleteQuizRequest{CorrectAnswers: 0, TotalQuestions: 10}.Validate())

	assert.Error(t, CompleteQuizRequest{CorrectAnswers: 8, TotalQuestions: 0}.Validate())
	assert.Error(t, CompleteQuizRequest{CorrectAnswers: -1, TotalQuestions: 10}.Validate())
}

func TestRedeemReferralRequestValidate(t *testing.T) {
	assert.NoError(t, RedeemReferralRequest{Code: "K7MX2Q"}.Validate())
	assert.Error(t, RedeemReferralRequest{Code: ""}.Validate())
	assert.Error(t, RedeemReferralRequest{Code: "K7MX2"}.Validate())
}

func TestPurchaseRequestValidate(t *testing.T) {
	assert.NoError(t, PurchaseRequest{ItemID: "hint_pack"}.Validate())
	assert.Error(t, PurchaseRequest{}.Validate())
}

func TestCreateValidationErrorResponse(t *testing.T) {
	err := CompleteQuizRequest{CorrectAnswers: 8}.Validate()
	require.Error(t, err)

	resp := CreateValidationErrorResponse(err)
	assert.Equal(t, 400, resp.Code)
	assert.Equal(t, "Validation failed", resp.Message)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "TotalQuestions", resp.Errors[0].Field)
}
