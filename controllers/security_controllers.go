package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mileusna/useragent"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/config"
	"github.com/crabkhai/crabkhai-shop/events"
	"github.com/crabkhai/crabkhai-shop/middlewares"
	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

type SecurityController struct {
	DB *gorm.DB
}

func NewSecurityController(db *gorm.DB) *SecurityController {
	return &SecurityController{DB: db}
}

// AuthorizeDevice -> exchange the setup token for a 30-day trusted device.
// On a bad token nothing is written.
func (sc *SecurityController) AuthorizeDevice(c *gin.Context) {
	type request struct {
		Token string `json:"token" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if req.Token != config.SetupSecret(sc.DB) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid setup token"})
		return
	}

	uaString := c.Request.UserAgent()
	ua := useragent.Parse(uaString)
	deviceName := ua.Name + " on " + ua.OS
	now := time.Now()
	expiresAt := now.Add(models.TrustedDeviceTTL)

	device := models.TrustedDevice{
		DeviceID:  uuid.NewString(),
		Name:      deviceName,
		UserAgent: uaString,
		OS:        ua.OS,
		Browser:   ua.Name,
		IPAddress: c.ClientIP(),
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := sc.DB.Create(&device).Error; err != nil {
		utils.ErrorLogger.Printf("device authorization failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to authorize device"})
		return
	}

	c.SetCookie(middlewares.TrustedDeviceCookie, device.DeviceID,
		int(models.TrustedDeviceTTL.Seconds()), "/", "", gin.Mode() == gin.ReleaseMode, true)

	logEntry := models.SecurityLog{
		IPAddress: c.ClientIP(),
		Action:    "DEVICE_AUTHORIZED",
		Severity:  models.SeverityHigh,
		Details:   "Authorized: " + deviceName,
		UserAgent: uaString,
		CreatedAt: now,
	}
	if err := sc.DB.Create(&logEntry).Error; err != nil {
		utils.ErrorLogger.Printf("failed to write security log: %v", err)
	}

	// Guarded independently; a failed notification does not revoke the device
	title := "New trusted device"
	notif := models.Notification{
		Title:     &title,
		Message:   deviceName + " was authorized for admin access",
		CreatedAt: now,
	}
	if err := sc.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("failed to create device notification: %v", err)
	}

	events.BroadcastDeviceAuthorized(device)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CheckDeviceTrust -> reads the cookie and reports trusted yes/no
func (sc *SecurityController) CheckDeviceTrust(c *gin.Context) {
	deviceID, err := c.Cookie(middlewares.TrustedDeviceCookie)
	if err != nil || deviceID == "" {
		utils.RespondJSON(c, http.StatusOK, "Device trust status", gin.H{"trusted": false})
		return
	}

	var device models.TrustedDevice
	if err := sc.DB.Where("device_id = ?", deviceID).First(&device).Error; err != nil {
		utils.RespondJSON(c, http.StatusOK, "Device trust status", gin.H{"trusted": false})
		return
	}

	trusted := device.TrustedAt(time.Now())
	if trusted {
		now := time.Now()
		sc.DB.Model(&device).UpdateColumn("last_used", now)
	}

	utils.RespondJSON(c, http.StatusOK, "Device trust status", gin.H{"trusted": trusted})
}

// ListDevices -> admin security page
func (sc *SecurityController) ListDevices(c *gin.Context) {
	var devices []models.TrustedDevice
	if err := sc.DB.Order("created_at desc").Find(&devices).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Trusted devices", devices)
}

// RevokeDevice -> delete a device and log the revocation
func (sc *SecurityController) RevokeDevice(c *gin.Context) {
	var device models.TrustedDevice
	if err := sc.DB.Where("device_id = ?", c.Param("device_id")).First(&device).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("device not found"))
		return
	}

	if err := sc.DB.Delete(&device).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	logEntry := models.SecurityLog{
		IPAddress: c.ClientIP(),
		Action:    "DEVICE_REVOKED",
		Severity:  models.SeverityMedium,
		Details:   "Revoked: " + device.Name,
		UserAgent: device.UserAgent,
		CreatedAt: time.Now(),
	}
	if err := sc.DB.Create(&logEntry).Error; err != nil {
		utils.ErrorLogger.Printf("failed to log device revocation: %v", err)
	}

	events.BroadcastDeviceRevoked(device.DeviceID)

	utils.RespondJSON(c, http.StatusOK, "Device revoked", nil)
}

// ListSecurityLogs -> newest first, capped
func (sc *SecurityController) ListSecurityLogs(c *gin.Context) {
	var logs []models.SecurityLog
	if err := sc.DB.Order("created_at desc").Limit(100).Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Security logs", logs)
}

// RotateSetupToken -> store a fresh setup secret on the SiteConfig row
func (sc *SecurityController) RotateSetupToken(c *gin.Context) {
	type request struct {
		Token string `json:"token" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var cfg models.SiteConfig
	err := sc.DB.First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cfg = models.SiteConfig{AdminSetupToken: &req.Token, UpdatedAt: time.Now()}
		err = sc.DB.Create(&cfg).Error
	case err == nil:
		cfg.AdminSetupToken = &req.Token
		cfg.UpdatedAt = time.Now()
		err = sc.DB.Save(&cfg).Error
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	logEntry := models.SecurityLog{
		IPAddress: c.ClientIP(),
		Action:    "SETUP_TOKEN_ROTATED",
		Severity:  models.SeverityHigh,
		UserAgent: c.Request.UserAgent(),
		CreatedAt: time.Now(),
	}
	if err := sc.DB.Create(&logEntry).Error; err != nil {
		utils.ErrorLogger.Printf("failed to log token rotation: %v", err)
	}

	utils.RespondJSON(c, http.StatusOK, "Setup token updated", nil)
}
