package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Soufianejami/coworkingcaisse/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockResult pairs the updated inventory row with the movement that changed it.
type StockResult struct {
	Inventory models.Inventory     `json:"inventory"`
	Movement  models.StockMovement `json:"movement"`
}

// lockInventory loads the inventory row for a product under a FOR UPDATE lock.
func lockInventory(tx *gorm.DB, productID uint) (*models.Inventory, error) {
	var inv models.Inventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// lockOrCreateInventory loads the inventory row, creating a zero-quantity one
// (threshold 5) when the product has never been stocked. The product itself
// must exist.
func lockOrCreateInventory(tx *gorm.DB, productID uint) (*models.Inventory, error) {
	inv, err := lockInventory(tx, productID)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fresh := models.Inventory{ProductID: productID, Quantity: 0, MinThreshold: 5}
	if createErr := tx.Create(&fresh).Error; createErr != nil {
		// Concurrent first stocking of the same product; use the winner's row.
		inv, err := lockInventory(tx, productID)
		if err != nil {
			return nil, createErr
		}
		return inv, nil
	}
	return &fresh, nil
}

// AddStock increments a product's on-hand quantity and appends an "add"
// movement, auto-creating the inventory row on first stocking. When the item
// carries a purchase price, a supplies expense of price*qty is recorded
// best-effort: a failure there is logged and never fails the stock operation.
func AddStock(db *gorm.DB, productID uint, qty int, userID uint, reason string) (*StockResult, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	var res StockResult
	err := db.Transaction(func(tx *gorm.DB) error {
		inv, err := lockOrCreateInventory(tx, productID)
		if err != nil {
			return err
		}

		now := time.Now()
		inv.Quantity += qty
		inv.LastRestockDate = &now
		if err := tx.Save(inv).Error; err != nil {
			return err
		}

		mv := models.StockMovement{
			InventoryID:   inv.ID,
			ProductID:     productID,
			Quantity:      qty,
			ActionType:    models.StockActionAdd,
			Reason:        reason,
			PerformedByID: userID,
		}
		if err := tx.Create(&mv).Error; err != nil {
			return err
		}

		res = StockResult{Inventory: *inv, Movement: mv}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Purchase expense is fire-and-forget, outside the stock transaction.
	if res.Inventory.PurchasePrice != nil && *res.Inventory.PurchasePrice > 0 {
		expense := models.Expense{
			Amount:        *res.Inventory.PurchasePrice * float64(qty),
			Category:      models.ExpenseCategorySupplies,
			Date:          time.Now(),
			Description:   fmt.Sprintf("Stock purchase: product #%d x%d", productID, qty),
			PaymentMethod: models.PaymentMethodCash,
			CreatedByID:   userID,
		}
		if err := db.Create(&expense).Error; err != nil {
			log.Printf("stock purchase expense not recorded for product %d: %v", productID, err)
		}
	}

	return &res, nil
}

// RemoveStock decrements a product's on-hand quantity and appends a "remove"
// movement, optionally linked to the café transaction that consumed the stock.
// Fails with ErrNotFound when the product has no inventory row and with
// ErrInsufficientStock (no mutation, no movement) when qty exceeds the on-hand
// quantity.
func RemoveStock(db *gorm.DB, productID uint, qty int, userID uint, reason string, transactionID *uint) (*StockResult, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	var res StockResult
	err := db.Transaction(func(tx *gorm.DB) error {
		inv, err := lockInventory(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if qty > inv.Quantity {
			return ErrInsufficientStock
		}

		inv.Quantity -= qty
		if err := tx.Save(inv).Error; err != nil {
			return err
		}

		mv := models.StockMovement{
			InventoryID:   inv.ID,
			ProductID:     productID,
			Quantity:      -qty,
			ActionType:    models.StockActionRemove,
			Reason:        reason,
			PerformedByID: userID,
			TransactionID: transactionID,
		}
		if err := tx.Create(&mv).Error; err != nil {
			return err
		}

		res = StockResult{Inventory: *inv, Movement: mv}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AdjustStock sets a product's on-hand quantity to an absolute value after a
// physical count and logs the signed delta as an "adjust" movement. A zero
// delta is still logged. The restock date is refreshed only when stock went up.
func AdjustStock(db *gorm.DB, productID uint, newQuantity int, userID uint, reason string) (*StockResult, error) {
	if newQuantity < 0 {
		return nil, ErrInvalidQuantity
	}

	var res StockResult
	err := db.Transaction(func(tx *gorm.DB) error {
		inv, err := lockOrCreateInventory(tx, productID)
		if err != nil {
			return err
		}

		delta := newQuantity - inv.Quantity
		inv.Quantity = newQuantity
		if delta > 0 {
			now := time.Now()
			inv.LastRestockDate = &now
		}
		if err := tx.Save(inv).Error; err != nil {
			return err
		}

		mv := models.StockMovement{
			InventoryID:   inv.ID,
			ProductID:     productID,
			Quantity:      delta,
			ActionType:    models.StockActionAdjust,
			Reason:        reason,
			PerformedByID: userID,
		}
		if err := tx.Create(&mv).Error; err != nil {
			return err
		}

		res = StockResult{Inventory: *inv, Movement: mv}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateInventory registers inventory settings (threshold, purchase price,
// expiration) for a product ahead of its first stocking. Fails with
// ErrDuplicateInventory when the product already has a row.
func CreateInventory(db *gorm.DB, inv *models.Inventory) error {
	var product models.Product
	if err := db.First(&product, inv.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var existing models.Inventory
	err := db.Where("product_id = ?", inv.ProductID).First(&existing).Error
	if err == nil {
		return ErrDuplicateInventory
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if inv.MinThreshold <= 0 {
		inv.MinThreshold = 5
	}
	return db.Create(inv).Error
}

// GetExpiringItems returns inventory whose expiration date falls within the
// next daysThreshold days, soonest first.
func GetExpiringItems(db *gorm.DB, daysThreshold int) ([]models.Inventory, error) {
	now := time.Now()
	limit := now.AddDate(0, 0, daysThreshold)
	var items []models.Inventory
	err := db.Preload("Product").
		Where("expiration_date IS NOT NULL AND expiration_date >= ? AND expiration_date <= ?", now, limit).
		Order("expiration_date ASC").
		Find(&items).Error
	return items, err
}

// GetLowStockItems returns inventory at or under its minimum threshold,
// lowest quantity first.
func GetLowStockItems(db *gorm.DB) ([]models.Inventory, error) {
	var items []models.Inventory
	err := db.Preload("Product").
		Where("quantity <= min_threshold").
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}
