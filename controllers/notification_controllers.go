package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/events"
	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> newest first, optional ?limit=
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	var notifs []models.Notification
	if err := nc.DB.Order("created_at desc").Limit(limit).Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// CreateNotification -> manual admin broadcast
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		Title   *string `json:"title"`
		Message string  `json:"message" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	notif := models.Notification{
		Title:     body.Title,
		Message:   body.Message,
		CreatedAt: time.Now(),
	}
	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastNotification(notif)

	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

// MarkAsRead
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	res := nc.DB.Model(&models.Notification{}).
		Where("id = ?", c.Param("notification_id")).Update("read", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", nil)
}

// ClearNotifications -> delete everything
func (nc *NotificationController) ClearNotifications(c *gin.Context) {
	if err := nc.DB.Where("1 = 1").Delete(&models.Notification{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notifications cleared", nil)
}
