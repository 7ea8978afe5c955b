package handlers

import (
	"github.com/chemquest-app/chemquest_api/shared"
	"github.com/gofiber/fiber/v2"
)

type LeaderboardHandler struct {
	leaderboardSvc LeaderboardServiceInterface
}

func NewLeaderboardHandler(leaderboardSvc LeaderboardServiceInterface) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardSvc: leaderboardSvc,
	}
}

// @Summary Leaderboard
// @Description Return the XP leaderboard for a period (weekly, monthly or all_time)
// @Tags leaderboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param period path string true "Leaderboard period" Enums(weekly, monthly, all_time)
// @Param limit query int false "Number of entries" default(50)
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard/{period} [get]
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	period := c.Params("period")
	limit := c.QueryInt("limit", 50)

	resp, err := h.leaderboardSvc.GetLeaderboard(period, limit, userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}
