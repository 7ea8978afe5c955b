package services

import (
	"errors"

	"github.com/chemquest-app/chemquest_api/dto"
	"github.com/chemquest-app/chemquest_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ShopService struct {
	context.DefaultService

	pgSvc *PostgresService
}

const SHOP_SVC = "shop_svc"

// ShopItem is one entry of the static catalog.
type ShopItem struct {
	ID    string
	Name  string
	Price int
	Type  string
}

var shopCatalog = []ShopItem{
	{ID: "lab_coat_gold", Name: "Golden Lab Coat", Price: 150, Type: shared.ItemTypeCosmetic},
	{ID: "lab_coat_neon", Name: "Neon Lab Coat", Price: 100, Type: shared.ItemTypeCosmetic},
	{ID: "goggles_plasma", Name: "Plasma Goggles", Price: 200, Type: shared.ItemTypeCosmetic},
	{ID: "hint_pack", Name: "Hint Pack", Price: 50, Type: shared.ItemTypePowerUp},
	{ID: "time_freeze", Name: "Time Freeze", Price: 120, Type: shared.ItemTypePowerUp},
	{ID: "double_xp", Name: "Double XP Booster", Price: 300, Type: shared.ItemTypePowerUp},
	{ID: "badge_nobel", Name: "Nobel Badge", Price: 500, Type: shared.ItemTypeBadge},
}

func (svc ShopService) Id() string {
	return SHOP_SVC
}

func (svc *ShopService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ShopService) Start() error {
	svc.pgSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func itemByID(itemID string) (ShopItem, bool) {
	for _, item := range shopCatalog {
		if item.ID == itemID {
			return item, true
		}
	}
	return ShopItem{}, false
}

func shortfallData(required, current int) dto.InsufficientFundsData {
	return dto.InsufficientFundsData{
		Required:  required,
		Current:   current,
		Shortfall: required - current,
	}
}

// ==================== OPERATIONS ====================

func (svc *ShopService) GetCatalog(userID string) (*dto.ShopCatalogResponse, error) {
	progress, err := svc.pgSvc.GetProgress(userID)
	if err != nil {
		return nil, shared.NewNotFoundError("Progress record not found")
	}

	items := make([]dto.ShopItemResponse, 0, len(shopCatalog))
	for _, item := range shopCatalog {
		items = append(items, dto.ShopItemResponse{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
			Type:  item.Type,
			Owned: progress.OwnsItem(item.ID),
		})
	}

	return &dto.ShopCatalogResponse{
		Items: items,
		Coins: progress.Coins,
	}, nil
}

// Purchase debits coins and credits the item in one locked write. A debit
// that would drive the balance negative is rejected before any mutation.
func (svc *ShopService) Purchase(userID, itemID string) (*dto.PurchaseResponse, error) {
	item, ok := itemByID(itemID)
	if !ok {
		return nil, shared.NewNotFoundError("Item not found")
	}

	var resp *dto.PurchaseResponse
	err := svc.pgSvc.Transaction(func(tx *gorm.DB) error {
		progress, err := svc.pgSvc.LockProgress(tx, userID)
		if err != nil {
			return err
		}

		if progress.OwnsItem(item.ID) {
			return shared.NewConflictError("Item is already owned")
		}

		if progress.Coins < item.Price {
			return shared.NewInsufficientError("Insufficient coins", shortfallData(item.Price, progress.Coins))
		}

		progress.Coins -= item.Price
		if err := progress.AddOwnedItem(item.ID); err != nil {
			return err
		}

		if err := svc.pgSvc.SaveProgress(tx, progress); err != nil {
			return err
		}

		resp = &dto.PurchaseResponse{
			ItemID:     item.ID,
			Coins:      progress.Coins,
			OwnedItems: progress.OwnedItemIDs(),
		}
		return nil
	})
	if err != nil {
		if _, ok := shared.GetAppError(err); ok {
			return nil, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Progress record not found")
		}
		return nil, shared.NewInternalError("Purchase failed", err)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"item_id": item.ID,
		"price":   item.Price,
	}).Info("Item purchased")

	return resp, nil
}
