package models

import (
	"time"

	"gorm.io/gorm"
)

// ExpenseCategory is the closed set of expense categories.
type ExpenseCategory string

const (
	ExpenseCategorySupplies    ExpenseCategory = "supplies"
	ExpenseCategoryRent        ExpenseCategory = "rent"
	ExpenseCategoryUtilities   ExpenseCategory = "utilities"
	ExpenseCategorySalaries    ExpenseCategory = "salaries"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// ExpenseCategories returns all expense categories.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategorySupplies,
		ExpenseCategoryRent,
		ExpenseCategoryUtilities,
		ExpenseCategorySalaries,
		ExpenseCategoryMaintenance,
		ExpenseCategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategorySupplies, ExpenseCategoryRent, ExpenseCategoryUtilities,
		ExpenseCategorySalaries, ExpenseCategoryMaintenance, ExpenseCategoryOther:
		return true
	}
	return false
}

// Expense is an operating cost record, read back by net-revenue reporting.
type Expense struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Amount        float64         `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category      ExpenseCategory `json:"category" gorm:"size:30;not null;index"`
	Date          time.Time       `json:"date" gorm:"not null;index"`
	Description   string          `json:"description,omitempty" gorm:"size:255"`
	PaymentMethod string          `json:"paymentMethod" gorm:"size:20;not null"`
	CreatedByID   uint            `json:"createdById" gorm:"index"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (Expense) TableName() string {
	return "expenses"
}
