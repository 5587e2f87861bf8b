package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

type StoryController struct {
	DB *gorm.DB
}

func NewStoryController(db *gorm.DB) *StoryController {
	return &StoryController{DB: db}
}

// GetStorySections -> public story page content
func (stc *StoryController) GetStorySections(c *gin.Context) {
	var sections []models.StorySection
	if err := stc.DB.Find(&sections).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Story sections", sections)
}

// UpsertStorySection -> create or replace the section keyed by type
func (stc *StoryController) UpsertStorySection(c *gin.Context) {
	type request struct {
		Type    string `json:"type" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	section := models.StorySection{
		Type:      req.Type,
		Content:   req.Content,
		UpdatedAt: time.Now(),
	}
	err := stc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&section).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Story section saved", section)
}
