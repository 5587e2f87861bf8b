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

type HeroController struct {
	DB *gorm.DB
}

func NewHeroController(db *gorm.DB) *HeroController {
	return &HeroController{DB: db}
}

type heroSlideReq struct {
	ImageURL   string `json:"image_url" binding:"required"`
	Title      string `json:"title"`
	TitleBn    string `json:"title_bn"`
	Subtitle   string `json:"subtitle"`
	SubtitleBn string `json:"subtitle_bn"`
	ButtonText string `json:"button_text"`
	ButtonLink string `json:"button_link"`
	IsActive   *bool  `json:"is_active"`
	SortOrder  int    `json:"sort_order"`
}

// GetHeroSlides -> public, ordered for the landing carousel
func (hc *HeroController) GetHeroSlides(c *gin.Context) {
	var slides []models.HeroSlide
	if err := hc.DB.Order("sort_order asc").Find(&slides).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Hero slides", slides)
}

// CreateHeroSlide
func (hc *HeroController) CreateHeroSlide(c *gin.Context) {
	var req heroSlideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	slide := models.HeroSlide{
		ImageURL:   req.ImageURL,
		Title:      req.Title,
		TitleBn:    req.TitleBn,
		Subtitle:   req.Subtitle,
		SubtitleBn: req.SubtitleBn,
		ButtonText: req.ButtonText,
		ButtonLink: req.ButtonLink,
		IsActive:   true,
		SortOrder:  req.SortOrder,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}

	if err := hc.DB.Create(&slide).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Hero slide created", slide)
}

// UpdateHeroSlide
func (hc *HeroController) UpdateHeroSlide(c *gin.Context) {
	var slide models.HeroSlide
	if err := hc.DB.First(&slide, c.Param("slide_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("slide not found"))
		return
	}

	var req heroSlideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	slide.ImageURL = req.ImageURL
	slide.Title = req.Title
	slide.TitleBn = req.TitleBn
	slide.Subtitle = req.Subtitle
	slide.SubtitleBn = req.SubtitleBn
	slide.ButtonText = req.ButtonText
	slide.ButtonLink = req.ButtonLink
	slide.SortOrder = req.SortOrder
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}
	slide.UpdatedAt = time.Now()

	if err := hc.DB.Save(&slide).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Hero slide updated", slide)
}

// DeleteHeroSlide
func (hc *HeroController) DeleteHeroSlide(c *gin.Context) {
	if err := hc.DB.Delete(&models.HeroSlide{}, c.Param("slide_id")).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Hero slide deleted", nil)
}

// ReorderHeroSlides -> bulk sort-order update
func (hc *HeroController) ReorderHeroSlides(c *gin.Context) {
	type item struct {
		ID        uint `json:"id" binding:"required"`
		SortOrder int  `json:"sort_order"`
	}
	var items []item
	if err := c.ShouldBindJSON(&items); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := hc.DB.Begin()
	for _, it := range items {
		if err := tx.Model(&models.HeroSlide{}).
			Where("id = ?", it.ID).Update("sort_order", it.SortOrder).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Slide order updated", nil)
}
