package utils

import (
	"fmt"
	"math/rand"
	"time"

	"storefront-order-api/models"
)

// estimatedDeliveryDelay is added to the order date to get the ETA shown to
// the customer.
const estimatedDeliveryDelay = 35 * time.Minute

// GenerateOrderID derives an order identifier purely from the cart contents
// and the customer phone. The hash is the classic polynomial rolling hash
// (hash*31 + byte) truncated to a signed 32-bit value, so re-submitting the
// identical cart for the same phone re-derives the identical id and the
// checkout becomes an idempotent retry target.
func GenerateOrderID(lines []models.CartLine, phone string) string {
	basis := ""
	for _, line := range lines {
		basis += fmt.Sprintf("%d:%d&", line.MenuItem.ID, line.Quantity)
	}
	basis += phone

	var hash int32
	for _, b := range []byte(basis) {
		hash = hash*31 + int32(b)
	}
	if hash < 0 {
		hash = -hash
	}
	return fmt.Sprintf("order_%d", hash)
}

// GenerateOrderNumber builds the human-facing number ORD-YYYYMMDD-RRRR.
// The 4-digit suffix is random and deliberately not checked for uniqueness
// against existing orders.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

// FinalPrice applies a percentage discount to a unit price. No rounding:
// full float precision is kept in stored records, rounding happens only at
// display time.
func FinalPrice(originalPrice, discount float64) float64 {
	return originalPrice * (1 - discount/100)
}

// OrderTotals holds the computed money summary for an order.
type OrderTotals struct {
	TotalAmount    float64
	OriginalAmount float64
	TotalSavings   float64
}

// CalculateOrderTotals sums pre- and post-discount line totals for a cart.
// For discounts in [0,100] TotalAmount never exceeds OriginalAmount and
// TotalSavings is exactly their difference.
func CalculateOrderTotals(lines []models.CartLine) OrderTotals {
	var t OrderTotals
	for _, line := range lines {
		qty := float64(line.Quantity)
		t.OriginalAmount += line.MenuItem.Price * qty
		t.TotalAmount += FinalPrice(line.MenuItem.Price, line.MenuItem.Discount) * qty
	}
	t.TotalSavings = t.OriginalAmount - t.TotalAmount
	return t
}

// MergeCustomerDefaults fills empty customer fields with guest defaults so an
// order can always be created even from a bare checkout form.
func MergeCustomerDefaults(customer models.CustomerInfo) models.CustomerInfo {
	if customer.Name == "" {
		customer.Name = "Guest Customer"
	}
	if customer.Phone == "" {
		customer.Phone = "+0000000000"
	}
	if customer.PaymentMethod == "" {
		customer.PaymentMethod = models.PaymentCash
	}
	return customer
}

// BuildOrderFromCart snapshots a cart into a new pending order. Every line is
// copied by value into an OrderItem so later catalog or cart changes cannot
// alter the record.
func BuildOrderFromCart(cart models.CartState, customer models.CustomerInfo, now time.Time) models.Order {
	customer = MergeCustomerDefaults(customer)

	items := make([]models.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, models.OrderItem{
			MenuID:        line.MenuItem.ID,
			Name:          line.MenuItem.NameIn("en"),
			Quantity:      line.Quantity,
			Price:         FinalPrice(line.MenuItem.Price, line.MenuItem.Discount),
			OriginalPrice: line.MenuItem.Price,
			Discount:      line.MenuItem.Discount,
			ImageURL:      line.MenuItem.ImageURL,
		})
	}

	totals := CalculateOrderTotals(cart.Lines)

	return models.Order{
		OrderID:               GenerateOrderID(cart.Lines, customer.Phone),
		OrderNumber:           GenerateOrderNumber(now),
		OrderDate:             now,
		Status:                models.StatusPending,
		Items:                 items,
		CustomerInfo:          customer,
		TotalAmount:           totals.TotalAmount,
		OriginalAmount:        totals.OriginalAmount,
		TotalSavings:          totals.TotalSavings,
		DeliveryAddress:       customer.Address,
		SpecialInstructions:   customer.Notes,
		EstimatedDeliveryTime: now.Add(estimatedDeliveryDelay),
		SubmittedToAPI:        false,
	}
}
