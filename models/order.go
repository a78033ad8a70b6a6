package models

import "time"

// OrderStatus represents all possible states of a storefront order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderItem is a denormalized snapshot of a cart line at checkout time.
// Price already has the discount applied; OriginalPrice is the catalog price
// the shopper saw. Snapshotting keeps order history independent of later
// catalog price changes.
type OrderItem struct {
	MenuID        uint    `json:"menu_id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Discount      float64 `json:"discount"`
	ImageURL      string  `json:"image_url,omitempty"`
}

// Order is created once at checkout. Status and SubmittedToAPI are the only
// fields that change afterwards.
type Order struct {
	OrderID               string       `json:"order_id"`
	OrderNumber           string       `json:"order_number"`
	OrderDate             time.Time    `json:"order_date"`
	Status                OrderStatus  `json:"status"`
	Items                 []OrderItem  `json:"items"`
	CustomerInfo          CustomerInfo `json:"customer_info"`
	TotalAmount           float64      `json:"total_amount"`
	OriginalAmount        float64      `json:"original_amount"`
	TotalSavings          float64      `json:"total_savings"`
	DeliveryAddress       string       `json:"delivery_address,omitempty"`
	SpecialInstructions   string       `json:"special_instructions,omitempty"`
	EstimatedDeliveryTime time.Time    `json:"estimated_delivery_time"`
	SubmittedToAPI        bool         `json:"submitted_to_api"`
}

// OrderState is the persisted projection of the order store: order history
// (newest first) plus the valid-customer registry keyed by phone.
type OrderState struct {
	Orders         []Order        `json:"orders"`
	ValidCustomers []CustomerInfo `json:"valid_customers"`
}
