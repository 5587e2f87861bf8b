package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/events"
	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

// LowStockThreshold triggers a dashboard warning after a sale.
const LowStockThreshold = 5

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
	ErrTotalMismatch   = errors.New("total amount does not match items minus discount")
)

type OrderItemInput struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	Price     float64 `json:"price"`
}

type PlaceOrderInput struct {
	CustomerName    string           `json:"customer_name" binding:"required"`
	CustomerPhone   string           `json:"customer_phone" binding:"required"`
	CustomerAddress string           `json:"customer_address" binding:"required"`
	Items           []OrderItemInput `json:"items" binding:"required"`
	TotalAmount     float64          `json:"total_amount"`
	CouponCode      string           `json:"coupon_code"`
	DiscountAmount  float64          `json:"discount_amount"`
}

// OrderService handles order placement and the stock bookkeeping around it.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder creates the order row, snapshots its items, deducts stock per
// product variant and increments coupon usage, all inside one transaction.
// A coupon that cannot be incremented (deleted, or at its usage cap) is
// recorded as a warning and never aborts the order.
func (s *OrderService) PlaceOrder(in PlaceOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var itemTotal float64
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		itemTotal += float64(item.Quantity) * item.Price
	}
	if math.Abs(itemTotal-in.DiscountAmount-in.TotalAmount) > 0.01 {
		return nil, ErrTotalMismatch
	}

	now := time.Now()
	order := models.Order{
		OrderID:         models.NewPublicOrderID(now),
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		TotalAmount:     in.TotalAmount,
		DiscountAmount:  in.DiscountAmount,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.CouponCode != "" {
		order.CouponCode = &in.CouponCode
	}
	for _, item := range in.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			CreatedAt: now,
		})
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range in.Items {
		var product models.Product
		if err := tx.Preload("ComboItems").First(&product, item.ProductID).Error; err != nil {
			// Snapshot item stays; there is no stock row to deduct
			utils.ErrorLogger.Printf("order %s references missing product %d", order.OrderID, item.ProductID)
			continue
		}

		for _, d := range product.Deductions(item.Quantity) {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", d.ProductID).
				UpdateColumn("pieces", gorm.Expr("pieces - ?", d.Pieces)).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if in.CouponCode != "" {
		res := tx.Model(&models.Coupon{}).
			Where("code = ? AND (usage_limit IS NULL OR used_count < usage_limit)", in.CouponCode).
			UpdateColumn("used_count", gorm.Expr("used_count + 1"))
		switch {
		case res.Error != nil:
			utils.ErrorLogger.Printf("failed to increment coupon %q usage: %v", in.CouponCode, res.Error)
		case res.RowsAffected == 0:
			utils.ErrorLogger.Printf("coupon %q missing or at usage cap for order %s", in.CouponCode, order.OrderID)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.afterPlacement(order, in.Items)

	return &order, nil
}

// afterPlacement runs the best-effort side effects of a committed order.
func (s *OrderService) afterPlacement(order models.Order, items []OrderItemInput) {
	title := "New order"
	notif := models.Notification{
		Title:     &title,
		Message:   "Order " + order.OrderID + " placed by " + order.CustomerName,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("failed to create order notification: %v", err)
	} else {
		events.BroadcastNotification(notif)
	}

	events.BroadcastOrderCreated(order)

	for _, item := range items {
		var product models.Product
		if err := s.db.First(&product, item.ProductID).Error; err != nil {
			continue
		}
		if product.Type != models.ProductTypeCombo && product.Pieces <= LowStockThreshold {
			events.BroadcastLowStock(product)
		}
	}
}
