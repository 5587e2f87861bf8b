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

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// CreateReview -> public; rating 1-5, product must exist
func (rc *ReviewController) CreateReview(c *gin.Context) {
	type request struct {
		ReviewerName string `json:"reviewer_name"`
		Rating       int    `json:"rating" binding:"required"`
		Comment      string `json:"comment"`
		Images       string `json:"images"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
		return
	}

	var product models.Product
	if err := rc.DB.First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	name := req.ReviewerName
	if name == "" {
		name = "Guest"
	}
	images := req.Images
	if images == "" {
		images = "[]"
	}

	review := models.Review{
		ProductID:    product.ID,
		ReviewerName: name,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Images:       images,
		CreatedAt:    time.Now(),
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Review submitted", review)
}

// GetProductReviews -> public, newest first
func (rc *ReviewController) GetProductReviews(c *gin.Context) {
	var reviews []models.Review
	if err := rc.DB.Where("product_id = ?", c.Param("product_id")).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product reviews", reviews)
}
