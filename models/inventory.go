package models

import "time"

// Inventory holds the current on-hand quantity for one product. Quantity is
// derived state: it must always equal the sum of the product's movement
// quantities, and it never goes negative.
type Inventory struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	ProductID       uint       `json:"productId" gorm:"uniqueIndex;not null"`
	Quantity        int        `json:"quantity" gorm:"not null;default:0"`
	MinThreshold    int        `json:"minThreshold" gorm:"not null;default:5"`
	PurchasePrice   *float64   `json:"purchasePrice,omitempty" gorm:"type:decimal(10,2)"`
	ExpirationDate  *time.Time `json:"expirationDate,omitempty"`
	LastRestockDate *time.Time `json:"lastRestockDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Product         Product    `json:"product" gorm:"foreignKey:ProductID"`
}

// TableName sets the table name.
func (Inventory) TableName() string {
	return "inventory"
}

// StockActionType is the closed set of stock movement kinds.
type StockActionType string

const (
	StockActionAdd    StockActionType = "add"
	StockActionRemove StockActionType = "remove"
	StockActionAdjust StockActionType = "adjust"
)

// Valid reports whether a is one of the known action types.
func (a StockActionType) Valid() bool {
	return a == StockActionAdd || a == StockActionRemove || a == StockActionAdjust
}

// StockMovement is one row of the append-only stock audit log. Quantity is
// signed: positive for add, negative for remove, either (including zero) for
// adjust deltas. Rows are never updated or deleted.
type StockMovement struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	InventoryID   uint            `json:"inventoryId" gorm:"index;not null"`
	ProductID     uint            `json:"productId" gorm:"index;not null"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	ActionType    StockActionType `json:"actionType" gorm:"size:20;not null"`
	Reason        string          `json:"reason,omitempty" gorm:"size:255"`
	PerformedByID uint            `json:"performedById" gorm:"index"`
	TransactionID *uint           `json:"transactionId,omitempty" gorm:"index"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TableName sets the table name.
func (StockMovement) TableName() string {
	return "stock_movements"
}
