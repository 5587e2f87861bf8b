package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/utils"
)

type CouponController struct {
	DB *gorm.DB
}

func NewCouponController(db *gorm.DB) *CouponController {
	return &CouponController{DB: db}
}

type couponReq struct {
	Code           string     `json:"code" binding:"required"`
	DiscountType   string     `json:"discount_type" binding:"required"`
	DiscountValue  float64    `json:"discount_value" binding:"required"`
	MinOrderAmount float64    `json:"min_order_amount"`
	UsageLimit     *int       `json:"usage_limit"`
	IsActive       *bool      `json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// GetAllCoupons -> admin list, newest first
func (cc *CouponController) GetAllCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := cc.DB.Order("created_at desc").Find(&coupons).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of coupons", coupons)
}

// CreateCoupon -> code must be unique
func (cc *CouponController) CreateCoupon(c *gin.Context) {
	var req couponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Coupon
	if err := cc.DB.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("coupon code already exists"))
		return
	}

	coupon := models.Coupon{
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		UsageLimit:     req.UsageLimit,
		IsActive:       true,
		ExpiresAt:      req.ExpiresAt,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := cc.DB.Create(&coupon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Coupon created", coupon)
}

// UpdateCoupon
func (cc *CouponController) UpdateCoupon(c *gin.Context) {
	var coupon models.Coupon
	if err := cc.DB.First(&coupon, c.Param("coupon_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("coupon not found"))
		return
	}

	var req couponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Coupon
	if err := cc.DB.Where("code = ?", req.Code).First(&existing).Error; err == nil && existing.ID != coupon.ID {
		utils.RespondError(c, http.StatusConflict, errors.New("coupon code already exists"))
		return
	}

	coupon.Code = req.Code
	coupon.DiscountType = req.DiscountType
	coupon.DiscountValue = req.DiscountValue
	coupon.MinOrderAmount = req.MinOrderAmount
	coupon.UsageLimit = req.UsageLimit
	coupon.ExpiresAt = req.ExpiresAt
	coupon.UpdatedAt = time.Now()

	if err := cc.DB.Save(&coupon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Coupon updated", coupon)
}

// ToggleCoupon -> flip active status
func (cc *CouponController) ToggleCoupon(c *gin.Context) {
	type request struct {
		IsActive bool `json:"is_active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := cc.DB.Model(&models.Coupon{}).
		Where("id = ?", c.Param("coupon_id")).Update("is_active", req.IsActive)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("coupon not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Coupon status updated", nil)
}

// DeleteCoupon
func (cc *CouponController) DeleteCoupon(c *gin.Context) {
	if err := cc.DB.Delete(&models.Coupon{}, c.Param("coupon_id")).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Coupon deleted", nil)
}

// ValidateCoupon -> checkout-side check, returns the computed discount
func (cc *CouponController) ValidateCoupon(c *gin.Context) {
	type request struct {
		Code      string  `json:"code" binding:"required"`
		CartTotal float64 `json:"cart_total"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var coupon models.Coupon
	if err := cc.DB.Where("code = ?", req.Code).First(&coupon).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Invalid coupon code"})
		return
	}

	if !coupon.IsActive {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Coupon is inactive"})
		return
	}
	if coupon.ExpiresAt != nil && time.Now().After(*coupon.ExpiresAt) {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Coupon has expired"})
		return
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Coupon usage limit reached"})
		return
	}
	if req.CartTotal < coupon.MinOrderAmount {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Minimum order amount is %.2f", coupon.MinOrderAmount),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"discount": coupon.Discount(req.CartTotal),
		"value":    coupon.DiscountValue,
		"code":     coupon.Code,
		"type":     coupon.DiscountType,
	})
}
