package dto

// ==================== SHOP DTOs ====================

type ShopItemResponse struct {
	ID    string `json:"id" example:"lab_coat_gold"`
	Name  string `json:"name" example:"Golden Lab Coat"`
	Price int    `json:"price" example:"150"`
	Type  string `json:"type" example:"cosmetic"`
	Owned bool   `json:"owned" example:"false"`
}

type ShopCatalogResponse struct {
	Items []ShopItemResponse `json:"items"`
	Coins int                `json:"coins" example:"730"`
}

type PurchaseRequest struct {
	ItemID string `json:"item_id" validate:"required" example:"lab_coat_gold"`
}

func (r PurchaseRequest) Validate() error {
	return GetValidator().Struct(r)
}

type PurchaseResponse struct {
	ItemID     string   `json:"item_id" example:"lab_coat_gold"`
	Coins      int      `json:"coins" example:"580"`
	OwnedItems []string `json:"owned_items"`
}

// InsufficientFundsData is attached to the shortfall error payload.
type InsufficientFundsData struct {
	Required  int `json:"required" example:"150"`
	Current   int `json:"current" example:"100"`
	Shortfall int `json:"shortfall" example:"50"`
}
