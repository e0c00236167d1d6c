package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package is a purchasable investment product with a fixed duration and
// profit rate. Deletion is blocked while any investment references it.
type Package struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationDays  int             `gorm:"not null" json:"duration_days"`
	ProfitPercent int             `gorm:"not null;default:100" json:"profit_percent"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Package) TableName() string {
	return "packages"
}
