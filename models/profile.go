package models

import "time"

// Profile is the per-user extension record. One row per user, created
// explicitly during registration (no save hooks).
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number,omitempty"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User        *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Investments []Investment       `gorm:"foreignKey:ProfileID" json:"investments,omitempty"`
	Summary     *InvestmentSummary `gorm:"foreignKey:ProfileID" json:"summary,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}
