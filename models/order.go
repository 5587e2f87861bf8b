package models

import (
	"fmt"
	"time"
)

// Order statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderID         string      `gorm:"type:varchar(32);unique;not null" json:"order_id"`
	CustomerName    string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string      `gorm:"type:varchar(32);not null" json:"customer_phone"`
	CustomerAddress string      `gorm:"type:text;not null" json:"customer_address"`
	TotalAmount     float64     `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CouponCode      *string     `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`
	DiscountAmount  float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount_amount"`
	Status          string      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Source          string      `gorm:"type:varchar(20);not null;default:'web'" json:"source"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

// NewPublicOrderID generates the customer-facing order reference.
func NewPublicOrderID(at time.Time) string {
	return fmt.Sprintf("ORD-%d", at.UnixMilli())
}
