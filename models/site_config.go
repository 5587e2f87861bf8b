package models

import "time"

// SiteConfig is a singleton row holding storefront contact details and the
// admin device-setup token.
type SiteConfig struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ContactPhone    string    `gorm:"type:varchar(32)" json:"contact_phone"`
	ContactEmail    string    `gorm:"type:varchar(255)" json:"contact_email"`
	ContactAddress  string    `gorm:"type:text" json:"contact_address"`
	AllergensText   string    `gorm:"type:varchar(255)" json:"allergens_text"`
	Certificates    string    `gorm:"type:text" json:"certificates"` // JSON array of image URLs
	AdminSetupToken *string   `gorm:"type:varchar(255)" json:"-"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
