package handlers

import (
	"net/http"
	"time"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/shared"
	"github.com/gofiber/fiber/v2"
)

type ChallengeHandler struct {
	challengeSvc ChallengeServiceInterface
}

func NewChallengeHandler(challengeSvc ChallengeServiceInterface) *ChallengeHandler {
	return &ChallengeHandler{
		challengeSvc: challengeSvc,
	}
}

// @Summary Today's challenge
// @Description Return the daily challenge for the current calendar day
// @Tags challenge
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ChallengeResponse}
// @Router /api/v1/challenge/today [get]
func (h *ChallengeHandler) TodaysChallenge(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.challengeSvc.TodaysChallenge(userID, time.Now())
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Complete today's challenge
// @Description Validate the submission against today's challenge and credit the reward
// @Tags challenge
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param challengeRequest body dto.CompleteChallengeRequest true "Challenge proof"
// @Success 200 {object} shared.Response{data=dto.CompleteChallengeResponse}
// @Router /api/v1/challenge/complete [post]
func (h *ChallengeHandler) CompleteChallenge(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CompleteChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.challengeSvc.CompleteChallenge(userID, req, time.Now())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Challenge completed", resp)
}
