package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/models"
)

func setupDeviceTrustRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open("file:device_trust_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.TrustedDevice{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Where("1 = 1").Delete(&models.TrustedDevice{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin/ping", DeviceTrust(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, db
}

func TestDeviceTrustNoCookie(t *testing.T) {
	router, _ := setupDeviceTrustRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeviceTrustStaleCookieCleared(t *testing.T) {
	router, _ := setupDeviceTrustRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: TrustedDeviceCookie, Value: "deleted-device"})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The stale cookie is invalidated on the way out
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == TrustedDeviceCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the stale cookie to be cleared")
}

func TestDeviceTrustExpiredRecord(t *testing.T) {
	router, db := setupDeviceTrustRouter(t)

	db.Create(&models.TrustedDevice{
		DeviceID:  "old-device",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-31 * 24 * time.Hour),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: TrustedDeviceCookie, Value: "old-device"})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeviceTrustValidDevice(t *testing.T) {
	router, db := setupDeviceTrustRouter(t)

	db.Create(&models.TrustedDevice{
		DeviceID:  "good-device",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: TrustedDeviceCookie, Value: "good-device"})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// last_used is refreshed on successful checks
	var device models.TrustedDevice
	db.Where("device_id = ?", "good-device").First(&device)
	assert.NotNil(t, device.LastUsed)
}
