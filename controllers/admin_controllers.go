package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/services"
	"github.com/crabkhai/crabkhai-shop/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> headline numbers for the admin home page
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders  int64   `json:"total_orders"`
		TodayOrders  int64   `json:"today_orders"`
		TotalRevenue float64 `json:"total_revenue"`
		TodayRevenue float64 `json:"today_revenue"`
		OrderStats   struct {
			Pending   int64 `json:"pending"`
			Confirmed int64 `json:"confirmed"`
			Shipped   int64 `json:"shipped"`
			Delivered int64 `json:"delivered"`
			Cancelled int64 `json:"cancelled"`
		} `json:"order_stats"`
		TrustedDevices int64 `json:"trusted_devices"`
		LowStockCount  int64 `json:"low_stock_count"`
	}

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)

	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.OrderStats.Pending)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusConfirmed).Count(&stats.OrderStats.Confirmed)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusShipped).Count(&stats.OrderStats.Shipped)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&stats.OrderStats.Delivered)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusCancelled).Count(&stats.OrderStats.Cancelled)

	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TotalRevenue)
	ac.DB.Model(&models.Order{}).
		Where("status = ? AND DATE(created_at) = ?", models.OrderStatusDelivered, today).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TodayRevenue)

	ac.DB.Model(&models.TrustedDevice{}).Where("expires_at > ?", time.Now()).Count(&stats.TrustedDevices)
	ac.DB.Model(&models.Product{}).
		Where("type = ? AND pieces <= ?", models.ProductTypeSingle, services.LowStockThreshold).
		Count(&stats.LowStockCount)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
