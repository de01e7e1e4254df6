package models

import (
	"time"

	"gorm.io/gorm"
)

// Product category constants
const (
	ProductCategoryDrink = "drink"
	ProductCategoryFood  = "food"
	ProductCategoryOther = "other"
)

// Product is a café catalogue item.
type Product struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Category  string         `json:"category" gorm:"size:30;not null;default:drink"`
	Price     float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	IsActive  bool           `json:"isActive" gorm:"default:true;index"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
