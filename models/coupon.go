package models

import (
	"math"
	"time"
)

// Coupon discount types
const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFixed      = "FIXED"
)

type Coupon struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Code           string     `gorm:"type:varchar(64);unique;not null" json:"code"`
	DiscountType   string     `gorm:"type:varchar(20);not null;default:'FIXED'" json:"discount_type"`
	DiscountValue  float64    `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	MinOrderAmount float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"min_order_amount"`
	UsageLimit     *int       `json:"usage_limit,omitempty"`
	UsedCount      int        `gorm:"not null;default:0" json:"used_count"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

// Discount computes the discount a coupon grants on cartTotal.
// Percentage discounts floor to a whole amount and are capped at the total.
func (cp *Coupon) Discount(cartTotal float64) float64 {
	var discount float64
	if cp.DiscountType == DiscountTypePercentage {
		discount = math.Floor(cartTotal * cp.DiscountValue / 100)
	} else {
		discount = cp.DiscountValue
	}
	if discount > cartTotal {
		discount = cartTotal
	}
	return discount
}
