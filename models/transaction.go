package models

import (
	"time"

	"gorm.io/gorm"
)

// TransactionType is the closed set of revenue event kinds.
type TransactionType string

const (
	TransactionTypeEntry        TransactionType = "entry"
	TransactionTypeSubscription TransactionType = "subscription"
	TransactionTypeCafe         TransactionType = "cafe"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeEntry, TransactionTypeSubscription, TransactionTypeCafe:
		return true
	}
	return false
}

// Payment method constants
const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodMobile = "mobile"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodCash || m == PaymentMethodCard || m == PaymentMethodMobile
}

// Transaction is a single monetary event: an entry fee, a subscription sale or a café order.
type Transaction struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	Type                TransactionType `json:"type" gorm:"size:20;not null;index"`
	Amount              float64         `json:"amount" gorm:"type:decimal(10,2);not null"`
	Date                time.Time       `json:"date" gorm:"not null;index"`
	PaymentMethod       string          `json:"paymentMethod" gorm:"size:20;not null"`
	ClientName          string          `json:"clientName,omitempty" gorm:"size:100"`
	Notes               string          `json:"notes,omitempty" gorm:"size:255"`
	SubscriptionEndDate *time.Time      `json:"subscriptionEndDate,omitempty"`
	CreatedByID         uint            `json:"createdById" gorm:"index"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (Transaction) TableName() string {
	return "transactions"
}
