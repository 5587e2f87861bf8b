package middlewares

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

// TrustedDeviceCookie is the name of the device-identifying cookie.
const TrustedDeviceCookie = "trusted_device"

// DeviceTrust gates admin routes on a valid trusted-device cookie.
// A cookie whose backing record is missing or expired is cleared so the
// browser does not keep presenting a stale identifier.
func DeviceTrust(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, err := c.Cookie(TrustedDeviceCookie)
		if err != nil || deviceID == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("device not authorized"))
			c.Abort()
			return
		}

		var device models.TrustedDevice
		if err := db.Where("device_id = ?", deviceID).First(&device).Error; err != nil {
			clearDeviceCookie(c)
			utils.RespondError(c, http.StatusUnauthorized, errors.New("device not authorized"))
			c.Abort()
			return
		}

		if !device.TrustedAt(time.Now()) {
			clearDeviceCookie(c)
			utils.RespondError(c, http.StatusUnauthorized, errors.New("device authorization expired"))
			c.Abort()
			return
		}

		// Best effort; trust does not depend on it
		now := time.Now()
		db.Model(&device).UpdateColumn("last_used", now)

		c.Set("device_id", device.DeviceID)
		c.Next()
	}
}

func clearDeviceCookie(c *gin.Context) {
	c.SetCookie(TrustedDeviceCookie, "", -1, "/", "", gin.Mode() == gin.ReleaseMode, true)
}
