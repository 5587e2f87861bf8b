package models

import "time"

// Review is a customer rating on a product. Checkout is guest-based, so the
// reviewer is a free-form name rather than a user account.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	Product      *Product  `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product,omitempty"`
	ReviewerName string    `gorm:"type:varchar(255);not null;default:'Guest'" json:"reviewer_name"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment"`
	Images       string    `gorm:"type:text" json:"images"` // JSON array of image URLs
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
