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

func setupTestDBForSections(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:sections_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ComboItem{}, &models.ProductSection{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Exec("DELETE FROM product_section_items")
	db.Where("1 = 1").Delete(&models.ProductSection{})
	db.Where("1 = 1").Delete(&models.Product{})
	return db
}

func setupSectionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	sectionCtrl := controllers.NewSectionController(db)
	router.GET("/sections", sectionCtrl.GetHomeSections)
	router.GET("/admin/sections", sectionCtrl.GetAllSections)
	router.POST("/admin/sections", sectionCtrl.CreateSection)
	router.PATCH("/admin/sections/reorder", sectionCtrl.ReorderSections)
	router.PATCH("/admin/sections/:section_id", sectionCtrl.UpdateSection)
	router.PUT("/admin/sections/:section_id/products", sectionCtrl.AssignProducts)
	router.DELETE("/admin/sections/:section_id", sectionCtrl.DeleteSection)
	return router
}

func TestCreateSectionAndDuplicateSlug(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSections(t)
	router := setupSectionRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"title": "Best Sellers",
		"slug":  "best-sellers",
	})
	req, _ := http.NewRequest("POST", "/admin/sections", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same slug again is a conflict
	req, _ = http.NewRequest("POST", "/admin/sections", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAssignProductsReplacesSet(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSections(t)
	router := setupSectionRouter(db)

	crab := models.Product{Name: "Mud Crab", Price: 450, Pieces: 30, Type: models.ProductTypeSingle}
	prawn := models.Product{Name: "Tiger Prawn", Price: 120, Pieces: 60, Type: models.ProductTypeSingle}
	lobster := models.Product{Name: "Lobster", Price: 1200, Pieces: 8, Type: models.ProductTypeSingle}
	db.Create(&crab)
	db.Create(&prawn)
	db.Create(&lobster)

	section := models.ProductSection{Title: "New Arrivals", Slug: "new-arrivals", IsActive: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	db.Create(&section)
	db.Model(&section).Association("Products").Append(&crab)

	payload, _ := json.Marshal(map[string]interface{}{
		"product_ids": []uint{prawn.ID, lobster.ID},
	})
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/admin/sections/%d/products", section.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var members []models.Product
	db.Model(&section).Association("Products").Find(&members)
	assert.Len(t, members, 2)
	names := []string{members[0].Name, members[1].Name}
	assert.Contains(t, names, "Tiger Prawn")
	assert.Contains(t, names, "Lobster")
	assert.NotContains(t, names, "Mud Crab")
}

func TestGetHomeSectionsOnlyActive(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSections(t)
	router := setupSectionRouter(db)

	crab := models.Product{Name: "Mud Crab", Price: 450, Pieces: 30, Type: models.ProductTypeSingle}
	db.Create(&crab)

	active := models.ProductSection{Title: "Best Sellers", Slug: "best-sellers", IsActive: true, SortOrder: 1, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	hidden := models.ProductSection{Title: "Archived", Slug: "archived", IsActive: false, SortOrder: 0, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	db.Create(&active)
	db.Create(&hidden)
	db.Model(&active).Association("Products").Append(&crab)

	req, _ := http.NewRequest("GET", "/sections", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	assert.Len(t, items, 1)
	section := items[0].(map[string]interface{})
	assert.Equal(t, "Best Sellers", section["title"])
	assert.Len(t, section["products"].([]interface{}), 1)
}

func TestReorderSections(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSections(t)
	router := setupSectionRouter(db)

	first := models.ProductSection{Title: "A", Slug: "a", IsActive: true, SortOrder: 0, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	second := models.ProductSection{Title: "B", Slug: "b", IsActive: true, SortOrder: 1, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	db.Create(&first)
	db.Create(&second)

	payload, _ := json.Marshal([]map[string]interface{}{
		{"id": first.ID, "sort_order": 1},
		{"id": second.ID, "sort_order": 0},
	})
	req, _ := http.NewRequest("PATCH", "/admin/sections/reorder", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.ProductSection
	db.First(&reloaded, second.ID)
	assert.Equal(t, 0, reloaded.SortOrder)
}

func TestDeleteSectionClearsMembership(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSections(t)
	router := setupSectionRouter(db)

	crab := models.Product{Name: "Mud Crab", Price: 450, Pieces: 30, Type: models.ProductTypeSingle}
	db.Create(&crab)
	section := models.ProductSection{Title: "Super Savings", Slug: "super-savings", IsActive: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	db.Create(&section)
	db.Model(&section).Association("Products").Append(&crab)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/admin/sections/%d", section.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.ProductSection{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var links int64
	db.Table("product_section_items").Count(&links)
	assert.Equal(t, int64(0), links)

	// The product itself survives
	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	assert.Equal(t, int64(1), productCount)
}
