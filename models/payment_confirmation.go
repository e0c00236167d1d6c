package models

import "time"

// PaymentConfirmation is the proof-of-payment record for an investment.
// The unique index on investment_id enforces at most one per investment.
type PaymentConfirmation struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	InvestmentID    uint       `gorm:"uniqueIndex;not null" json:"investment_id"`
	WhatsappNumber  string     `gorm:"size:20" json:"whatsapp_number,omitempty"`
	ScreenshotPath  string     `gorm:"size:255;not null" json:"screenshot_path"`
	ScreenshotURL   string     `gorm:"size:512" json:"screenshot_url,omitempty"`
	SentAt          time.Time  `gorm:"not null" json:"sent_at"`
	AdminApproved   bool       `gorm:"default:false" json:"admin_approved"`
	AdminApprovedAt *time.Time `json:"admin_approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	Investment *Investment `gorm:"foreignKey:InvestmentID" json:"investment,omitempty"`
}

func (PaymentConfirmation) TableName() string {
	return "payment_confirmations"
}
