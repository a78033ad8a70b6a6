package handlers

import (
	"gorm.io/gorm"

	"storefront-order-api/client"
	"storefront-order-api/store"
)

// Handler carries the injected collaborators every endpoint needs: the
// catalog database, both state stores and the upstream order backend.
type Handler struct {
	DB      *gorm.DB
	Carts   *store.CartStore
	Orders  *store.OrderStore
	Backend *client.OrderBackend
}

func New(db *gorm.DB, carts *store.CartStore, orders *store.OrderStore, backend *client.OrderBackend) *Handler {
	return &Handler{DB: db, Carts: carts, Orders: orders, Backend: backend}
}
