package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/controllers"
	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

func setupTestDBForReviews(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:reviews_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ComboItem{}, &models.Review{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Where("1 = 1").Delete(&models.Review{})
	db.Where("1 = 1").Delete(&models.Product{})
	return db
}

func setupReviewRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	reviewCtrl := controllers.NewReviewController(db)
	router.POST("/products/:product_id/reviews", reviewCtrl.CreateReview)
	router.GET("/products/:product_id/reviews", reviewCtrl.GetProductReviews)
	return router
}

func TestCreateReview(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReviews(t)
	router := setupReviewRouter(db)

	product := models.Product{Name: "Soft Shell Crab", Price: 350, Pieces: 40, Type: models.ProductTypeSingle}
	db.Create(&product)

	payload, _ := json.Marshal(map[string]interface{}{
		"reviewer_name": "Farhana",
		"rating":        5,
		"comment":       "Fresh and well packed",
	})
	req, _ := http.NewRequest("POST", fmt.Sprintf("/products/%d/reviews", product.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var review models.Review
	assert.NoError(t, db.Where("product_id = ?", product.ID).First(&review).Error)
	assert.Equal(t, "Farhana", review.ReviewerName)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "[]", review.Images)
}

func TestCreateReviewAnonymousDefaultsToGuest(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReviews(t)
	router := setupReviewRouter(db)

	product := models.Product{Name: "King Crab", Price: 950, Pieces: 15, Type: models.ProductTypeSingle}
	db.Create(&product)

	payload, _ := json.Marshal(map[string]interface{}{"rating": 4})
	req, _ := http.NewRequest("POST", fmt.Sprintf("/products/%d/reviews", product.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var review models.Review
	assert.NoError(t, db.Where("product_id = ?", product.ID).First(&review).Error)
	assert.Equal(t, "Guest", review.ReviewerName)
}

func TestCreateReviewRejectsBadRating(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReviews(t)
	router := setupReviewRouter(db)

	product := models.Product{Name: "Lobster", Price: 1200, Pieces: 8, Type: models.ProductTypeSingle}
	db.Create(&product)

	for _, rating := range []int{-1, 6} {
		payload, _ := json.Marshal(map[string]interface{}{"rating": rating})
		req, _ := http.NewRequest("POST", fmt.Sprintf("/products/%d/reviews", product.ID), bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReviews(t)
	router := setupReviewRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{"rating": 3})
	req, _ := http.NewRequest("POST", "/products/9999/reviews", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductReviewsNewestFirst(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReviews(t)
	router := setupReviewRouter(db)

	product := models.Product{Name: "Tiger Prawn", Price: 120, Pieces: 60, Type: models.ProductTypeSingle}
	other := models.Product{Name: "Mud Crab", Price: 450, Pieces: 30, Type: models.ProductTypeSingle}
	db.Create(&product)
	db.Create(&other)

	db.Create(&models.Review{ProductID: product.ID, ReviewerName: "Asif", Rating: 3, Images: "[]", CreatedAt: time.Now().Add(-time.Hour)})
	db.Create(&models.Review{ProductID: product.ID, ReviewerName: "Nusrat", Rating: 5, Images: "[]", CreatedAt: time.Now()})
	db.Create(&models.Review{ProductID: other.ID, ReviewerName: "Tareq", Rating: 4, Images: "[]", CreatedAt: time.Now()})

	req, _ := http.NewRequest("GET", fmt.Sprintf("/products/%d/reviews", product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	assert.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Nusrat", first["reviewer_name"])
}
