package handlers

import (
	"net/http"
	"time"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/shared"
	"github.com/gofiber/fiber/v2"
)

type ProgressHandler struct {
	progressionSvc ProgressionServiceInterface
}

func NewProgressHandler(progressionSvc ProgressionServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressionSvc: progressionSvc,
	}
}

// @Summary Get progress
// @Description Return the authenticated user's progression record
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressionSvc.GetProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Complete a quiz
// @Description Credit quiz XP through the streak multiplier and rederive the rank
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param quizRequest body dto.CompleteQuizRequest true "Quiz result"
// @Success 200 {object} shared.Response{data=dto.CompleteQuizResponse}
// @Router /api/v1/quiz/complete [post]
func (h *ProgressHandler) CompleteQuiz(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CompleteQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressionSvc.CompleteQuiz(userID, req, time.Now())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Quiz completed", resp)
}
