package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// --- Expenses ---

// GetExpenses -> newest first
func (ic *InventoryController) GetExpenses(c *gin.Context) {
	var expenses []models.Expense
	if err := ic.DB.Order("date desc").Find(&expenses).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of expenses", expenses)
}

// AddExpense
func (ic *InventoryController) AddExpense(c *gin.Context) {
	type request struct {
		Title       string  `json:"title" binding:"required"`
		Amount      float64 `json:"amount" binding:"required"`
		Category    string  `json:"category" binding:"required"`
		Description string  `json:"description"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	expense := models.Expense{
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        time.Now(),
		CreatedAt:   time.Now(),
	}
	if err := ic.DB.Create(&expense).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Expense added", expense)
}

// DeleteExpense
func (ic *InventoryController) DeleteExpense(c *gin.Context) {
	if err := ic.DB.Delete(&models.Expense{}, c.Param("expense_id")).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Expense deleted", nil)
}

// --- Stock ---

// UpdateStock -> set a product's piece count outright
func (ic *InventoryController) UpdateStock(c *gin.Context) {
	type request struct {
		Pieces int `json:"pieces"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := ic.DB.Model(&models.Product{}).
		Where("id = ?", c.Param("product_id")).Update("pieces", req.Pieces)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stock updated", nil)
}

// AdjustStock -> apply a signed delta
func (ic *InventoryController) AdjustStock(c *gin.Context) {
	type request struct {
		Delta int `json:"delta" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := ic.DB.Model(&models.Product{}).
		Where("id = ?", c.Param("product_id")).
		UpdateColumn("pieces", gorm.Expr("pieces + ?", req.Delta))
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", nil)
}

// GetInventoryStats -> stock value, delivered sales, expenses, net profit
func (ic *InventoryController) GetInventoryStats(c *gin.Context) {
	var stats struct {
		StockValue    float64 `json:"stock_value"`
		TotalSales    float64 `json:"total_sales"`
		TotalExpenses float64 `json:"total_expenses"`
		NetProfit     float64 `json:"net_profit"`
	}

	var products []models.Product
	if err := ic.DB.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	for _, p := range products {
		stats.StockValue += float64(p.Pieces) * p.Price
	}

	ic.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TotalSales)

	ic.DB.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&stats.TotalExpenses)

	stats.NetProfit = stats.TotalSales - stats.TotalExpenses

	utils.RespondJSON(c, http.StatusOK, "Inventory stats", stats)
}
