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

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> public catalog listing
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Preload("Category").Preload("ComboItems.Child").
		Order("name asc").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetProductByID -> public detail with combo children
func (pc *ProductController) GetProductByID(c *gin.Context) {
	var product models.Product
	if err := pc.DB.Preload("Category").Preload("ComboItems.Child").
		First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

type comboItemReq struct {
	ChildID  uint `json:"child_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

type productReq struct {
	CategoryID  *uint          `json:"category_id"`
	Name        string         `json:"name" binding:"required"`
	SKU         string         `json:"sku"`
	Price       float64        `json:"price" binding:"required"`
	Pieces      int            `json:"pieces"`
	Weight      *float64       `json:"weight"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Image       *string        `json:"image"`
	ComboItems  []comboItemReq `json:"combo_items"`
}

// CreateProduct -> admin; COMBO products carry their child associations
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	productType := req.Type
	if productType == "" {
		productType = models.ProductTypeSingle
	}
	if productType != models.ProductTypeSingle && productType != models.ProductTypeCombo {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product type"))
		return
	}

	product := models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		SKU:         req.SKU,
		Price:       req.Price,
		Pieces:      req.Pieces,
		Weight:      req.Weight,
		Type:        productType,
		Description: req.Description,
		Image:       req.Image,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if productType == models.ProductTypeCombo {
		for _, ci := range req.ComboItems {
			product.ComboItems = append(product.ComboItems, models.ComboItem{
				ChildID:  ci.ChildID,
				Quantity: ci.Quantity,
			})
		}
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct -> admin edit, combo children replaced wholesale when sent
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := pc.DB.First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product.CategoryID = req.CategoryID
	product.Name = req.Name
	product.SKU = req.SKU
	product.Price = req.Price
	product.Pieces = req.Pieces
	product.Weight = req.Weight
	product.Description = req.Description
	product.Image = req.Image
	product.UpdatedAt = time.Now()

	tx := pc.DB.Begin()
	if err := tx.Save(&product).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if product.Type == models.ProductTypeCombo && req.ComboItems != nil {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ComboItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		for _, ci := range req.ComboItems {
			item := models.ComboItem{ProductID: product.ID, ChildID: ci.ChildID, Quantity: ci.Quantity}
			if err := tx.Create(&item).Error; err != nil {
				tx.Rollback()
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := pc.DB.First(&product, c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	tx := pc.DB.Begin()
	if err := tx.Where("product_id = ?", product.ID).Delete(&models.ComboItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}
