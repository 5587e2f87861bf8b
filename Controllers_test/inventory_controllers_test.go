package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/controllers"
	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

func setupTestDBForInventory(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:inventory_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Product{}, &models.Order{}, &models.Expense{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Where("1 = 1").Delete(&models.Product{})
	db.Where("1 = 1").Delete(&models.Order{})
	db.Where("1 = 1").Delete(&models.Expense{})
	return db
}

func setupInventoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	invCtrl := controllers.NewInventoryController(db)
	router.GET("/admin/expenses", invCtrl.GetExpenses)
	router.POST("/admin/expenses", invCtrl.AddExpense)
	router.DELETE("/admin/expenses/:expense_id", invCtrl.DeleteExpense)
	router.GET("/admin/inventory/stats", invCtrl.GetInventoryStats)
	router.PATCH("/admin/stock/:product_id", invCtrl.UpdateStock)
	router.PATCH("/admin/stock/:product_id/adjust", invCtrl.AdjustStock)
	return router
}

func TestStockSetAndAdjust(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInventory(t)
	router := setupInventoryRouter(db)

	product := models.Product{Name: "King Crab", Price: 2500, Pieces: 8, Type: models.ProductTypeSingle}
	db.Create(&product)

	payload, _ := json.Marshal(map[string]interface{}{"pieces": 20})
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/admin/stock/%d", product.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Product
	db.First(&got, product.ID)
	assert.Equal(t, 20, got.Pieces)

	payload, _ = json.Marshal(map[string]interface{}{"delta": -5})
	req, _ = http.NewRequest("PATCH", fmt.Sprintf("/admin/stock/%d/adjust", product.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	db.First(&got, product.ID)
	assert.Equal(t, 15, got.Pieces)

	// Unknown product is a 404
	payload, _ = json.Marshal(map[string]interface{}{"pieces": 1})
	req, _ = http.NewRequest("PATCH", "/admin/stock/99999", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInventoryStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInventory(t)
	router := setupInventoryRouter(db)

	db.Create(&models.Product{Name: "Crab A", Price: 100, Pieces: 10, Type: models.ProductTypeSingle})
	db.Create(&models.Product{Name: "Crab B", Price: 50, Pieces: 4, Type: models.ProductTypeSingle})

	db.Create(&models.Order{OrderID: "ORD-1", CustomerName: "A", CustomerPhone: "1", CustomerAddress: "x", TotalAmount: 500, Status: models.OrderStatusDelivered})
	db.Create(&models.Order{OrderID: "ORD-2", CustomerName: "B", CustomerPhone: "2", CustomerAddress: "y", TotalAmount: 300, Status: models.OrderStatusPending})

	db.Create(&models.Expense{Title: "Ice", Amount: 120, Category: "supplies"})

	req, _ := http.NewRequest("GET", "/admin/inventory/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	stats := resp["data"].(map[string]interface{})

	// 10*100 + 4*50 = 1200 stock value; only delivered orders count as sales
	assert.Equal(t, float64(1200), stats["stock_value"])
	assert.Equal(t, float64(500), stats["total_sales"])
	assert.Equal(t, float64(120), stats["total_expenses"])
	assert.Equal(t, float64(380), stats["net_profit"])
}

func TestExpenseLifecycle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForInventory(t)
	router := setupInventoryRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"title":    "Delivery fuel",
		"amount":   350.0,
		"category": "logistics",
	})
	req, _ := http.NewRequest("POST", "/admin/expenses", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	data := createResp["data"].(map[string]interface{})
	expenseID := int(data["id"].(float64))

	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/admin/expenses/%d", expenseID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Expense{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
