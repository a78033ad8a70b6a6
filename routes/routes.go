package routes

import (
	"storefront-order-api/handlers"
	"storefront-order-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	r.Use(middleware.RequestID())

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/menu", h.ListMenu)
		public.GET("/menu/:id", h.GetMenuItem)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Cart routes ────────────────────────────────────────────────
	cart := r.Group("/api/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddMenu)
		cart.GET("/items/:menuId", h.GetCartItem)
		cart.PUT("/items/:menuId/increase", h.IncreaseQuantity)
		cart.PUT("/items/:menuId/decrease", h.DecreaseQuantity)
		cart.DELETE("/items/:menuId", h.RemoveMenu)
		cart.PUT("/total", h.SetTotal)
		cart.DELETE("", h.ClearCart)
	}

	// ── Order routes ───────────────────────────────────────────────
	orders := r.Group("/api")
	{
		orders.POST("/checkout", h.Checkout)
		orders.GET("/orders", h.GetOrders)
		orders.GET("/orders/:orderId", h.GetOrderDetail)
		orders.PUT("/orders/:orderId/status", h.UpdateOrderStatus)
		orders.PUT("/orders/:orderId/cancel", h.CancelOrder)
		orders.DELETE("/orders/cancelled", h.RemoveCancelledOrders)
		orders.DELETE("/orders/:orderId", h.RemoveOrder)
		orders.DELETE("/orders", h.ClearOrders)

		orders.GET("/customers/:phone", h.GetValidCustomer)
		orders.GET("/customers/:phone/validate", h.ValidateCustomer)
	}

	// ── Catalog management routes ──────────────────────────────────
	manage := r.Group("/api/manage")
	{
		manage.POST("/menu", h.CreateMenuItem)
		manage.PUT("/menu/:id", h.UpdateMenuItem)
		manage.DELETE("/menu/:id", h.DeleteMenuItem)
	}
}
