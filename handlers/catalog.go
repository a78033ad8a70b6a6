package handlers

import (
	"net/http"

	"storefront-order-api/models"
	"storefront-order-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ListMenu returns catalog items (public)
func (h *Handler) ListMenu(c *gin.Context) {
	var items []models.MenuItem
	query := h.DB.Order("id")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if active := c.Query("active"); active == "true" {
		query = query.Where("is_active = ?", true)
	}
	query.Find(&items)

	lang := c.DefaultQuery("lang", "en")
	names := make(map[uint]string, len(items))
	for _, item := range items {
		names[item.ID] = item.NameIn(lang)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":           len(items),
		"menu":            items,
		"localized_names": names,
	})
}

// GetMenuItem returns a single catalog item
func (h *Handler) GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := h.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

type MenuItemRequest struct {
	Names    map[string]string `json:"names" binding:"required"`
	Price    float64           `json:"price" binding:"required,gt=0"`
	Discount float64           `json:"discount" binding:"gte=0,lte=100"`
	ImageURL string            `json:"image_url"`
	Category string            `json:"category"`
	IsActive *bool             `json:"is_active"`
}

func (r MenuItemRequest) names() datatypes.JSONMap {
	m := datatypes.JSONMap{}
	for lang, name := range r.Names {
		m[lang] = name
	}
	return m
}

// CreateMenuItem adds a catalog item (management)
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		Names:    req.names(),
		Price:    req.Price,
		Discount: req.Discount,
		ImageURL: req.ImageURL,
		Category: req.Category,
		IsActive: true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "menu_item": item})
}

// UpdateMenuItem edits a catalog item (management). Existing carts and
// orders keep their snapshots and are not affected.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := h.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.Names = req.names()
	item.Price = req.Price
	item.Discount = req.Discount
	item.ImageURL = req.ImageURL
	item.Category = req.Category
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "menu_item": item})
}

// DeleteMenuItem removes a catalog item (management)
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	if err := h.DB.Delete(&models.MenuItem{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Storefront Order Lifecycle State Machine",
	})
}
