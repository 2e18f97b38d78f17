package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// BusinessProfile is the business identity collected during onboarding
// and applied as defaults for new invoices.
type BusinessProfile struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	UserID       snowflake.ID   `gorm:"uniqueIndex;not null" json:"user_id"`
	BusinessName string         `gorm:"not null" json:"business_name"`
	OwnerName    string         `gorm:"not null" json:"owner_name"`
	Email        string         `gorm:"not null" json:"email"`
	Phone        string         `gorm:"not null" json:"phone"`
	Address      string         `gorm:"not null" json:"address"`
	City         string         `gorm:"not null" json:"city"`
	State        string         `gorm:"not null" json:"state"`
	ZipCode      string         `gorm:"not null" json:"zip_code"`
	Website      string         `json:"website,omitempty"`
	LogoURL      string         `json:"logo_url,omitempty"`
	ColorScheme  datatypes.JSON `gorm:"type:json" json:"color_scheme,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BusinessProfile) TableName() string { return "business_profiles" }
