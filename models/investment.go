package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

type Investment struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ProfileID      uint            `gorm:"not null;index" json:"profile_id"`
	PackageID      uint            `gorm:"not null;index" json:"package_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	ExpectedReturn decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"expected_return"`
	Status         string          `gorm:"type:enum('pending','approved','cancelled','refunded');default:'pending'" json:"status"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	RefundedAt     *time.Time      `json:"refunded_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Profile *Profile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
}

func (Investment) TableName() string {
	return "investments"
}

// ValidStatus reports whether s is one of the four lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// ApplyStatus moves the investment to the given status and maintains the
// transition timestamps: exactly one of approved_at/cancelled_at/refunded_at
// is set and matches the status; all three are null while pending.
// Re-applying the current status keeps the existing stamp.
func (inv *Investment) ApplyStatus(status string, now time.Time) error {
	switch status {
	case StatusPending:
		inv.ApprovedAt = nil
		inv.CancelledAt = nil
		inv.RefundedAt = nil
	case StatusApproved:
		if inv.ApprovedAt == nil {
			inv.ApprovedAt = &now
		}
		inv.CancelledAt = nil
		inv.RefundedAt = nil
	case StatusCancelled:
		if inv.CancelledAt == nil {
			inv.CancelledAt = &now
		}
		inv.ApprovedAt = nil
		inv.RefundedAt = nil
	case StatusRefunded:
		if inv.RefundedAt == nil {
			inv.RefundedAt = &now
		}
		inv.ApprovedAt = nil
		inv.CancelledAt = nil
	default:
		return fmt.Errorf("invalid investment status %q", status)
	}
	inv.Status = status
	return nil
}

// ExpectedReturnFor computes amount * (1 + profit_percent/100) rounded to
// two decimal places.
func ExpectedReturnFor(amount decimal.Decimal, profitPercent int) decimal.Decimal {
	rate := decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(profitPercent)).Div(decimal.NewFromInt(100)))
	return amount.Mul(rate).Round(2)
}
