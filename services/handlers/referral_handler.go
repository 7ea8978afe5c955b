package handlers

import (
	"net/http"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/shared"
	"github.com/gofiber/fiber/v2"
)

type ReferralHandler struct {
	referralSvc ReferralServiceInterface
}

func NewReferralHandler(referralSvc ReferralServiceInterface) *ReferralHandler {
	return &ReferralHandler{
		referralSvc: referralSvc,
	}
}

// @Summary Referral info
// @Description Return the user's referral code, redemption state and referral count
// @Tags referral
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ReferralInfoResponse}
// @Router /api/v1/referral [get]
func (h *ReferralHandler) GetInfo(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.referralSvc.GetInfo(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Redeem a referral code
// @Description Credit both the redeemer and the code owner exactly once
// @Tags referral
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param redeemRequest body dto.RedeemReferralRequest true "Referral code"
// @Success 200 {object} shared.Response{data=dto.RedeemReferralResponse}
// @Router /api/v1/referral/redeem [post]
func (h *ReferralHandler) Redeem(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.RedeemReferralRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.referralSvc.Redeem(userID, req.Code)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Referral code redeemed", resp)
}
