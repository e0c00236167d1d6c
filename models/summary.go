package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentSummary is a cached aggregate per profile. It is recomputed
// after every mutation that affects it and is never authoritative on its own.
type InvestmentSummary struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	ProfileID           uint            `gorm:"uniqueIndex;not null" json:"profile_id"`
	TotalInvested       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_invested"`
	TotalReturn         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_return"`
	PendingPayments     int             `gorm:"not null;default:0" json:"pending_payments"`
	HasActiveInvestment bool            `gorm:"not null;default:false" json:"has_active_investment"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (InvestmentSummary) TableName() string {
	return "investment_summaries"
}
