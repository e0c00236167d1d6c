package models

import "time"

// CryptoWallet is a deposit address shown to users on the payment step.
// Only the first active wallet is surfaced.
type CryptoWallet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Address   string    `gorm:"size:255;not null" json:"address"`
	Network   string    `gorm:"size:100;not null" json:"network"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CryptoWallet) TableName() string {
	return "crypto_wallets"
}

// SiteSetting holds site-wide support contact info (single row).
type SiteSetting struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	WhatsappSupportLink string    `gorm:"size:300" json:"whatsapp_support_link"`
	SupportEmail        string    `gorm:"size:255" json:"support_email"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (SiteSetting) TableName() string {
	return "site_settings"
}
