package models

// PaymentMethod defines how a customer pays for an order
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

// CustomerInfo identifies the person placing an order. Phone is the natural
// key: valid-customer lookups match on phone first, then name.
type CustomerInfo struct {
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email,omitempty"`
	Address       string        `json:"address,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}
