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

// Products shown per section rail on the landing page
const sectionRailLimit = 10

type SectionController struct {
	DB *gorm.DB
}

func NewSectionController(db *gorm.DB) *SectionController {
	return &SectionController{DB: db}
}

type sectionReq struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// GetAllSections -> admin list with product counts
func (sc *SectionController) GetAllSections(c *gin.Context) {
	var sections []models.ProductSection
	if err := sc.DB.Order("sort_order asc").Find(&sections).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type sectionWithCount struct {
		models.ProductSection
		ProductCount int64 `json:"product_count"`
	}
	out := make([]sectionWithCount, 0, len(sections))
	for _, s := range sections {
		count := sc.DB.Model(&s).Association("Products").Count()
		out = append(out, sectionWithCount{ProductSection: s, ProductCount: count})
	}

	utils.RespondJSON(c, http.StatusOK, "List of sections", out)
}

// GetHomeSections -> public; active sections with a capped product rail
func (sc *SectionController) GetHomeSections(c *gin.Context) {
	var sections []models.ProductSection
	if err := sc.DB.Where("is_active = ?", true).
		Order("sort_order asc").Find(&sections).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for i := range sections {
		var products []models.Product
		err := sc.DB.Model(&sections[i]).
			Order("created_at desc").Limit(sectionRailLimit).
			Association("Products").Find(&products)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		sections[i].Products = products
	}

	utils.RespondJSON(c, http.StatusOK, "Home sections", sections)
}

// CreateSection -> slug must be unique
func (sc *SectionController) CreateSection(c *gin.Context) {
	var req sectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.ProductSection
	if err := sc.DB.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("section slug already exists"))
		return
	}

	section := models.ProductSection{
		Title:     req.Title,
		Slug:      req.Slug,
		IsActive:  true,
		SortOrder: req.SortOrder,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := sc.DB.Create(&section).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Section created", section)
}

// UpdateSection
func (sc *SectionController) UpdateSection(c *gin.Context) {
	var section models.ProductSection
	if err := sc.DB.First(&section, c.Param("section_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("section not found"))
		return
	}

	var req sectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.ProductSection
	if err := sc.DB.Where("slug = ?", req.Slug).First(&existing).Error; err == nil && existing.ID != section.ID {
		utils.RespondError(c, http.StatusConflict, errors.New("section slug already exists"))
		return
	}

	section.Title = req.Title
	section.Slug = req.Slug
	section.SortOrder = req.SortOrder
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}
	section.UpdatedAt = time.Now()

	if err := sc.DB.Save(&section).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Section updated", section)
}

// DeleteSection -> membership rows go with it
func (sc *SectionController) DeleteSection(c *gin.Context) {
	var section models.ProductSection
	if err := sc.DB.First(&section, c.Param("section_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("section not found"))
		return
	}

	if err := sc.DB.Model(&section).Association("Products").Clear(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := sc.DB.Delete(&section).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Section deleted", nil)
}

// AssignProducts -> replace the section's product set wholesale
func (sc *SectionController) AssignProducts(c *gin.Context) {
	type request struct {
		ProductIDs []uint `json:"product_ids" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var section models.ProductSection
	if err := sc.DB.First(&section, c.Param("section_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("section not found"))
		return
	}

	var products []models.Product
	if len(req.ProductIDs) > 0 {
		if err := sc.DB.Find(&products, req.ProductIDs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if err := sc.DB.Model(&section).Association("Products").Replace(products); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Section products updated", nil)
}

// ReorderSections -> bulk sort-order update
func (sc *SectionController) ReorderSections(c *gin.Context) {
	type item struct {
		ID        uint `json:"id" binding:"required"`
		SortOrder int  `json:"sort_order"`
	}
	var items []item
	if err := c.ShouldBindJSON(&items); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := sc.DB.Begin()
	for _, it := range items {
		if err := tx.Model(&models.ProductSection{}).
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

	utils.RespondJSON(c, http.StatusOK, "Section order updated", nil)
}
