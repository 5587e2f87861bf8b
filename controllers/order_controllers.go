package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/events"
	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/services"
	"github.com/crabkhai/crabkhai-shop/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:      db,
		Service: services.NewOrderService(db),
	}
}

// CreateOrder -> public checkout entry point
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body services.PlaceOrderInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	order, err := oc.Service.PlaceOrder(body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder),
			errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrTotalMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			utils.ErrorLogger.Printf("create order failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order_id": order.OrderID})
}

// GetAllOrders -> admin list, newest first, with items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items.Product").Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByPublicID -> detail by the ORD-... reference
func (oc *OrderController) GetOrderByPublicID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items.Product").
		Where("order_id = ?", c.Param("order_id")).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder -> admin edits customer info, price or status
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Where("order_id = ?", c.Param("order_id")).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	type updateReq struct {
		CustomerName  *string  `json:"customer_name"`
		CustomerPhone *string  `json:"customer_phone"`
		TotalAmount   *float64 `json:"total_amount"`
		Status        *string  `json:"status"`
	}
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = *req.CustomerPhone
	}
	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	order.UpdatedAt = time.Now()

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder -> items first, order row second
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Where("order_id = ?", c.Param("order_id")).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if err := oc.DB.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := oc.DB.Delete(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", nil)
}

// GetPendingCount -> badge counter for the admin header
func (oc *OrderController) GetPendingCount(c *gin.Context) {
	var count int64
	if err := oc.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending order count", gin.H{"count": count})
}
