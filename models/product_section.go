package models

import "time"

// ProductSection groups products into a landing-page rail ("Best Sellers",
// "New Arrivals"). Membership is a plain many-to-many set.
type ProductSection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Slug      string    `gorm:"type:varchar(100);unique;not null" json:"slug"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	Products  []Product `gorm:"many2many:product_section_items" json:"products,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
