package Controllers_test

import (
	"bytes"
	"encoding/json"
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

func setupTestDBForUsers(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:users_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Where("1 = 1").Delete(&models.User{})
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"name":     "Admin",
		"email":    "admin@crabkhai.test",
		"phone":    "+8801700000000",
		"password": "verysecret",
		"role":     "admin",
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate phone is rejected
	payload2, _ := json.Marshal(map[string]interface{}{
		"name":     "Clone",
		"email":    "clone@crabkhai.test",
		"phone":    "+8801700000000",
		"password": "whatever",
	})
	req, _ = http.NewRequest("POST", "/register", bytes.NewBuffer(payload2))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Correct credentials return a token
	loginPayload, _ := json.Marshal(map[string]interface{}{
		"email":    "admin@crabkhai.test",
		"password": "verysecret",
	})
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(loginPayload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "admin", data["user_role"])

	// Wrong password is a 401
	badPayload, _ := json.Marshal(map[string]interface{}{
		"email":    "admin@crabkhai.test",
		"password": "nope",
	})
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(badPayload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
