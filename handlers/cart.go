package handlers

import (
	"net/http"
	"strconv"

	"storefront-order-api/models"
	"storefront-order-api/store"

	"github.com/gin-gonic/gin"
)

// cartID resolves which cart a request addresses. Storefront clients send
// their persisted cart id in a header; a bare request gets the default cart.
func cartID(c *gin.Context) string {
	if id := c.GetHeader("X-Cart-ID"); id != "" {
		return id
	}
	if id := c.Query("cart_id"); id != "" {
		return id
	}
	return store.DefaultCartID
}

func menuIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("menuId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu id"})
		return 0, false
	}
	return uint(id), true
}

// GetCart returns the cart's lines and cached total
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.Carts.Snapshot(cartID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cart_id": cartID(c),
		"count":   len(cart.Lines),
		"lines":   cart.Lines,
		"total":   cart.Total,
	})
}

type AddMenuRequest struct {
	MenuID   uint `json:"menu_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// AddMenu puts an item into the cart with the given quantity. Re-adding an
// item replaces its quantity, it does not add to it.
func (h *Handler) AddMenu(c *gin.Context) {
	var req AddMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	if err := h.DB.First(&item, req.MenuID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if !item.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + item.NameIn("en") + "' is not available"})
		return
	}

	if err := h.Carts.AddMenu(cartID(c), item, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  item.NameIn("en") + " added to cart",
		"menu_id":  item.ID,
		"quantity": req.Quantity,
	})
}

// GetCartItem returns the cart line for one menu item
func (h *Handler) GetCartItem(c *gin.Context) {
	menuID, ok := menuIDParam(c)
	if !ok {
		return
	}
	line, found, err := h.Carts.GetMenuByID(cartID(c), menuID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in the cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"line": line})
}

// IncreaseQuantity bumps a cart line by one
func (h *Handler) IncreaseQuantity(c *gin.Context) {
	menuID, ok := menuIDParam(c)
	if !ok {
		return
	}
	if err := h.Carts.IncreaseQuantity(cartID(c), menuID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quantity increased", "menu_id": menuID})
}

// DecreaseQuantity lowers a cart line by one, removing it at quantity one
func (h *Handler) DecreaseQuantity(c *gin.Context) {
	menuID, ok := menuIDParam(c)
	if !ok {
		return
	}
	if err := h.Carts.DecreaseQuantity(cartID(c), menuID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quantity decreased", "menu_id": menuID})
}

// RemoveMenu drops a cart line unconditionally
func (h *Handler) RemoveMenu(c *gin.Context) {
	menuID, ok := menuIDParam(c)
	if !ok {
		return
	}
	if err := h.Carts.RemoveMenu(cartID(c), menuID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "menu_id": menuID})
}

type SetTotalRequest struct {
	Total float64 `json:"total" binding:"gte=0"`
}

// SetTotal stores a caller-computed cart total
func (h *Handler) SetTotal(c *gin.Context) {
	var req SetTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Carts.SetTotal(cartID(c), req.Total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart total updated", "total": req.Total})
}

// ClearCart resets the cart to empty
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.Carts.ClearCart(cartID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
