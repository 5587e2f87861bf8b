package models

import "time"

// Promo card styles
const (
	PromoStyleClassic = "CLASSIC"
	PromoStyleMinimal = "MINIMAL"
)

// PromoCard is the landing-page promo popup. At most one card is active at a
// time; activating a card deactivates the others.
type PromoCard struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	ImageURL      string    `gorm:"type:varchar(255)" json:"image_url"`
	Style         string    `gorm:"type:varchar(20);not null;default:'CLASSIC'" json:"style"`
	ButtonText    string    `gorm:"type:varchar(100)" json:"button_text"`
	ButtonLink    string    `gorm:"type:varchar(255)" json:"button_link"`
	Price         *string   `gorm:"type:varchar(32)" json:"price,omitempty"`
	OriginalPrice *string   `gorm:"type:varchar(32)" json:"original_price,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
