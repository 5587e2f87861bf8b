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

type PromoController struct {
	DB *gorm.DB
}

func NewPromoController(db *gorm.DB) *PromoController {
	return &PromoController{DB: db}
}

type promoReq struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
	Style         string  `json:"style"`
	ButtonText    string  `json:"button_text"`
	ButtonLink    string  `json:"button_link"`
	Price         *string `json:"price"`
	OriginalPrice *string `json:"original_price"`
	IsActive      *bool   `json:"is_active"`
}

// GetAllPromos -> admin list, newest first
func (pc *PromoController) GetAllPromos(c *gin.Context) {
	var promos []models.PromoCard
	if err := pc.DB.Order("created_at desc").Find(&promos).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of promos", promos)
}

// GetActivePromo -> public; the most recently updated active card, or nothing
func (pc *PromoController) GetActivePromo(c *gin.Context) {
	var promo models.PromoCard
	if err := pc.DB.Where("is_active = ?", true).
		Order("updated_at desc").First(&promo).Error; err != nil {
		utils.RespondJSON(c, http.StatusOK, "Active promo", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active promo", promo)
}

// CreatePromo -> an active card deactivates the rest
func (pc *PromoController) CreatePromo(c *gin.Context) {
	var req promoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	style := req.Style
	if style == "" {
		style = models.PromoStyleClassic
	}

	promo := models.PromoCard{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Style:         style,
		ButtonText:    req.ButtonText,
		ButtonLink:    req.ButtonLink,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}

	tx := pc.DB.Begin()
	if promo.IsActive {
		if err := tx.Model(&models.PromoCard{}).
			Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if err := tx.Create(&promo).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Promo created", promo)
}

// UpdatePromo
func (pc *PromoController) UpdatePromo(c *gin.Context) {
	var promo models.PromoCard
	if err := pc.DB.First(&promo, c.Param("promo_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("promo not found"))
		return
	}

	var req promoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	promo.Title = req.Title
	promo.Description = req.Description
	promo.ImageURL = req.ImageURL
	if req.Style != "" {
		promo.Style = req.Style
	}
	promo.ButtonText = req.ButtonText
	promo.ButtonLink = req.ButtonLink
	promo.Price = req.Price
	promo.OriginalPrice = req.OriginalPrice
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}
	promo.UpdatedAt = time.Now()

	tx := pc.DB.Begin()
	if promo.IsActive {
		if err := tx.Model(&models.PromoCard{}).
			Where("id <> ? AND is_active = ?", promo.ID, true).
			Update("is_active", false).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if err := tx.Save(&promo).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Promo updated", promo)
}

// TogglePromo -> flip active status, keeping at most one card active
func (pc *PromoController) TogglePromo(c *gin.Context) {
	type request struct {
		IsActive bool `json:"is_active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var promo models.PromoCard
	if err := pc.DB.First(&promo, c.Param("promo_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("promo not found"))
		return
	}

	tx := pc.DB.Begin()
	if req.IsActive {
		if err := tx.Model(&models.PromoCard{}).
			Where("id <> ? AND is_active = ?", promo.ID, true).
			Update("is_active", false).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if err := tx.Model(&promo).Update("is_active", req.IsActive).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Promo status updated", nil)
}

// DeletePromo
func (pc *PromoController) DeletePromo(c *gin.Context) {
	if err := pc.DB.Delete(&models.PromoCard{}, c.Param("promo_id")).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Promo deleted", nil)
}
