package handlers

import (
	"net/http"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/shared"
	"github.com/gofiber/fiber/v2"
)

type ShopHandler struct {
	shopSvc ShopServiceInterface
}

func NewShopHandler(shopSvc ShopServiceInterface) *ShopHandler {
	return &ShopHandler{
		shopSvc: shopSvc,
	}
}

// @Summary Shop catalog
// @Description Return the item catalog with ownership flags and the user's balance
// @Tags shop
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ShopCatalogResponse}
// @Router /api/v1/shop [get]
func (h *ShopHandler) GetCatalog(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.shopSvc.GetCatalog(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Purchase an item
// @Description Debit coins and add the item to the user's owned set
// @Tags shop
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param purchaseRequest body dto.PurchaseRequest true "Item to purchase"
// @Success 200 {object} shared.Response{data=dto.PurchaseResponse}
// @Router /api/v1/shop/purchase [post]
func (h *ShopHandler) Purchase(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.shopSvc.Purchase(userID, req.ItemID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Purchase successful", resp)
}
