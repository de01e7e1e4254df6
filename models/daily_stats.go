package models

import "time"

// DailyStats is the materialized per-day revenue aggregate. One row per calendar
// day, keyed by the day-floored date; maintained incrementally on every
// transaction mutation, never recomputed from raw rows on read.
type DailyStats struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	Date                 time.Time `json:"date" gorm:"type:date;uniqueIndex;not null"`
	TotalRevenue         float64   `json:"totalRevenue" gorm:"type:decimal(12,2);not null;default:0"`
	EntriesRevenue       float64   `json:"entriesRevenue" gorm:"type:decimal(12,2);not null;default:0"`
	EntriesCount         int       `json:"entriesCount" gorm:"not null;default:0"`
	SubscriptionsRevenue float64   `json:"subscriptionsRevenue" gorm:"type:decimal(12,2);not null;default:0"`
	SubscriptionsCount   int       `json:"subscriptionsCount" gorm:"not null;default:0"`
	CafeRevenue          float64   `json:"cafeRevenue" gorm:"type:decimal(12,2);not null;default:0"`
	CafeOrdersCount      int       `json:"cafeOrdersCount" gorm:"not null;default:0"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// TableName sets the table name.
func (DailyStats) TableName() string {
	return "daily_stats"
}
