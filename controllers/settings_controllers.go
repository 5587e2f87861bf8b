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

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

// GetSiteConfig -> public contact/config block; defaults when unset
func (stc *SettingsController) GetSiteConfig(c *gin.Context) {
	var cfg models.SiteConfig
	if err := stc.DB.First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondJSON(c, http.StatusOK, "Site config", gin.H{
				"contact_phone":   "+880 1804 221 161",
				"contact_email":   "crabkhaibangladesh@gmail.com",
				"contact_address": "195 Green Road, Dhaka",
				"allergens_text":  "Crustaceans",
				"certificates":    "[]",
			})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Site config", cfg)
}

// UpdateSiteConfig -> upsert the singleton row
func (stc *SettingsController) UpdateSiteConfig(c *gin.Context) {
	type request struct {
		ContactPhone   string `json:"contact_phone"`
		ContactEmail   string `json:"contact_email"`
		ContactAddress string `json:"contact_address"`
		AllergensText  string `json:"allergens_text"`
		Certificates   string `json:"certificates"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var cfg models.SiteConfig
	err := stc.DB.First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cfg = models.SiteConfig{
			ContactPhone:   req.ContactPhone,
			ContactEmail:   req.ContactEmail,
			ContactAddress: req.ContactAddress,
			AllergensText:  req.AllergensText,
			Certificates:   req.Certificates,
			UpdatedAt:      time.Now(),
		}
		err = stc.DB.Create(&cfg).Error
	case err == nil:
		cfg.ContactPhone = req.ContactPhone
		cfg.ContactEmail = req.ContactEmail
		cfg.ContactAddress = req.ContactAddress
		cfg.AllergensText = req.AllergensText
		cfg.Certificates = req.Certificates
		cfg.UpdatedAt = time.Now()
		err = stc.DB.Save(&cfg).Error
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Settings saved", cfg)
}
