package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"storefront-order-api/models"
	"storefront-order-api/statemachine"
	"storefront-order-api/store"
	"storefront-order-api/utils"

	"github.com/gin-gonic/gin"
)

type CheckoutRequest struct {
	Name          string               `json:"name"`
	Phone         string               `json:"phone"`
	Email         string               `json:"email" binding:"omitempty,email"`
	Address       string               `json:"address"`
	Notes         string               `json:"notes"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"omitempty,oneof=cash card online"`
}

// Checkout snapshots the cart into a new pending order, submits it to the
// order backend when one is configured, and clears the cart. Re-checking out
// an identical cart for the same phone re-derives the same order id, so a
// retry overwrites the earlier order instead of duplicating it.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := cartID(c)
	cart, err := h.Carts.Snapshot(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	if len(cart.Lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	customer := models.CustomerInfo{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	}
	order := utils.BuildOrderFromCart(cart, customer, time.Now())

	if err := h.Orders.AddOrder(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order"})
		return
	}

	notification := "Order placed"
	if h.Backend.Enabled() {
		if err := h.Backend.Submit(order); err != nil {
			// Order stays pending/unsubmitted; the user may retry checkout.
			log.Printf("order %s submission failed: %v", order.OrderID, err)
			notification = "Order saved, but could not be sent to the kitchen. Please try again."
		} else {
			if err := h.Orders.MarkOrderAsSubmitted(order.OrderID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
				return
			}
			if err := h.Orders.AddValidCustomer(order.CustomerInfo); err != nil {
				log.Printf("valid customer upsert failed: %v", err)
			}
			order.SubmittedToAPI = true
			order.Status = models.StatusConfirmed
			notification = "Order confirmed"
		}
	}

	if err := h.Carts.ClearCart(id); err != nil {
		log.Printf("cart %s clear failed after checkout: %v", id, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": notification,
		"order":   order,
	})
}

// GetOrders returns order history, newest first
func (h *Handler) GetOrders(c *gin.Context) {
	orders := h.Orders.GetOrders()
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order with its elapsed time
func (h *Handler) GetOrderDetail(c *gin.Context) {
	order, ok := h.Orders.GetOrderByID(c.Param("orderId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	elapsed := time.Since(order.OrderDate).Minutes()
	c.JSON(http.StatusOK, gin.H{
		"order":           order,
		"minutes_elapsed": int(elapsed),
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending confirmed preparing ready delivered cancelled"`
}

// UpdateOrderStatus moves an order through its lifecycle, rejecting
// transitions the state machine does not allow
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok := h.Orders.GetOrderByID(orderID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := h.Orders.UpdateOrderStatus(orderID, req.Status); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        orderID,
		"previous_status": order.Status,
		"current_status":  req.Status,
	})
}

// CancelOrder cancels an order that is still pending or confirmed
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if err := h.Orders.CancelOrder(orderID); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		order, _ := h.Orders.GetOrderByID(orderID)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": orderID})
}

// RemoveOrder deletes one order from history
func (h *Handler) RemoveOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if err := h.Orders.RemoveOrder(orderID); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order removed", "order_id": orderID})
}

// RemoveCancelledOrders drops all cancelled orders from history
func (h *Handler) RemoveCancelledOrders(c *gin.Context) {
	removed, err := h.Orders.RemoveCancelledOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cancelled orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cancelled orders removed", "removed": removed})
}

// ClearOrders empties the order history (valid customers are kept)
func (h *Handler) ClearOrders(c *gin.Context) {
	if err := h.Orders.ClearOrders(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order history cleared"})
}

// GetValidCustomer returns the stored customer for a phone number
func (h *Handler) GetValidCustomer(c *gin.Context) {
	customer, ok := h.Orders.GetValidCustomer(c.Param("phone"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// ValidateCustomer checks a (phone, name) pair against the registry.
// Phone must match exactly, name case-insensitively.
func (h *Handler) ValidateCustomer(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter required"})
		return
	}
	valid := h.Orders.IsValidCustomer(c.Param("phone"), name)
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}
