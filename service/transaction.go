package service

import (
	"errors"
	"time"

	"github.com/Soufianejami/coworkingcaisse/models"

	"gorm.io/gorm"
)

// DeriveSubscriptionEnd returns the default subscription end date: one calendar
// month after the start date.
func DeriveSubscriptionEnd(date time.Time) time.Time {
	return date.AddDate(0, 1, 0)
}

// CreateTransaction persists the transaction and folds it into the daily stats
// aggregate, both inside one DB transaction. A subscription without an explicit
// end date gets one derived from its date.
func CreateTransaction(db *gorm.DB, t *models.Transaction) error {
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	if t.Type == models.TransactionTypeSubscription && t.SubscriptionEndDate == nil {
		end := DeriveSubscriptionEnd(t.Date)
		t.SubscriptionEndDate = &end
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return applyToDailyStats(tx, t, +1)
	})
}

// TransactionPatch enumerates the legally mutable transaction fields. A nil
// field means "leave unchanged".
type TransactionPatch struct {
	Type                *models.TransactionType
	Amount              *float64
	Date                *time.Time
	PaymentMethod       *string
	ClientName          *string
	Notes               *string
	SubscriptionEndDate *time.Time
}

// UpdateTransaction applies the patch and reconciles the aggregate when any of
// amount, date or type changed: the original contribution is subtracted from
// the original day's row and the new contribution added to the new day's row
// (two distinct rows when the date moved). Returns ErrNotFound for unknown ids.
func UpdateTransaction(db *gorm.DB, id uint, patch TransactionPatch) (*models.Transaction, error) {
	var updated models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var orig models.Transaction
		if err := tx.First(&orig, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updated = orig
		if patch.Type != nil {
			updated.Type = *patch.Type
		}
		if patch.Amount != nil {
			updated.Amount = *patch.Amount
		}
		if patch.Date != nil {
			updated.Date = *patch.Date
		}
		if patch.PaymentMethod != nil {
			updated.PaymentMethod = *patch.PaymentMethod
		}
		if patch.ClientName != nil {
			updated.ClientName = *patch.ClientName
		}
		if patch.Notes != nil {
			updated.Notes = *patch.Notes
		}
		if patch.SubscriptionEndDate != nil {
			updated.SubscriptionEndDate = patch.SubscriptionEndDate
		}

		// Became (or stayed) a subscription with no end date anywhere: derive
		// one from the effective date.
		if updated.Type == models.TransactionTypeSubscription && updated.SubscriptionEndDate == nil {
			base := updated.Date
			if base.IsZero() {
				base = time.Now()
			}
			end := DeriveSubscriptionEnd(base)
			updated.SubscriptionEndDate = &end
		}

		if err := tx.Save(&updated).Error; err != nil {
			return err
		}

		if updated.Amount != orig.Amount || !updated.Date.Equal(orig.Date) || updated.Type != orig.Type {
			if err := applyToDailyStats(tx, &orig, -1); err != nil {
				return err
			}
			if err := applyToDailyStats(tx, &updated, +1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransaction removes the row and subtracts its contribution from the
// aggregate. Returns ErrNotFound for unknown ids.
func DeleteTransaction(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var t models.Transaction
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&t).Error; err != nil {
			return err
		}
		return applyToDailyStats(tx, &t, -1)
	})
}
