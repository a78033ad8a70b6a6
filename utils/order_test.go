package utils

import (
	"math"
	"strings"
	"testing"
	"time"

	"storefront-order-api/models"

	"gorm.io/datatypes"
)

func line(id uint, name string, price, discount float64, qty int) models.CartLine {
	return models.CartLine{
		MenuItem: models.MenuItem{
			ID:       id,
			Names:    datatypes.JSONMap{"en": name},
			Price:    price,
			Discount: discount,
		},
		Quantity: qty,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGenerateOrderID_Deterministic(t *testing.T) {
	lines := []models.CartLine{line(1, "Pizza", 12.99, 10, 2), line(7, "Salad", 8.5, 0, 1)}

	a := GenerateOrderID(lines, "+1234567890")
	b := GenerateOrderID(lines, "+1234567890")
	if a != b {
		t.Fatalf("same cart and phone produced different ids: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "order_") {
		t.Fatalf("order id missing prefix: %s", a)
	}
}

func TestGenerateOrderID_SensitiveToInputs(t *testing.T) {
	base := []models.CartLine{line(1, "Pizza", 12.99, 10, 2)}
	id := GenerateOrderID(base, "+1234567890")

	tests := []struct {
		name  string
		lines []models.CartLine
		phone string
	}{
		{"different menu id", []models.CartLine{line(2, "Pizza", 12.99, 10, 2)}, "+1234567890"},
		{"different quantity", []models.CartLine{line(1, "Pizza", 12.99, 10, 3)}, "+1234567890"},
		{"different phone", base, "+1234567891"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateOrderID(tt.lines, tt.phone); got == id {
				t.Fatalf("expected a different order id, got the same: %s", got)
			}
		})
	}
}

func TestGenerateOrderNumber_Format(t *testing.T) {
	now := time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		n := GenerateOrderNumber(now)
		if !strings.HasPrefix(n, "ORD-20240307-") {
			t.Fatalf("unexpected order number prefix: %s", n)
		}
		if len(n) != len("ORD-20240307-0000") {
			t.Fatalf("unexpected order number length: %s", n)
		}
	}
}

func TestCalculateOrderTotals(t *testing.T) {
	tests := []struct {
		name           string
		lines          []models.CartLine
		totalAmount    float64
		originalAmount float64
	}{
		{
			"single discounted line",
			[]models.CartLine{line(1, "Pizza", 12.99, 10, 2)},
			2 * (12.99 * 0.9),
			25.98,
		},
		{
			"no discount",
			[]models.CartLine{line(1, "Salad", 8.5, 0, 3)},
			25.5,
			25.5,
		},
		{
			"full discount",
			[]models.CartLine{line(1, "Promo", 5, 100, 1)},
			0,
			5,
		},
		{
			"mixed lines",
			[]models.CartLine{line(1, "Pizza", 12.99, 10, 2), line(2, "Drink", 3.25, 0, 1)},
			2*(12.99*0.9) + 3.25,
			25.98 + 3.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOrderTotals(tt.lines)
			if !almostEqual(got.TotalAmount, tt.totalAmount) {
				t.Errorf("TotalAmount = %v, want %v", got.TotalAmount, tt.totalAmount)
			}
			if !almostEqual(got.OriginalAmount, tt.originalAmount) {
				t.Errorf("OriginalAmount = %v, want %v", got.OriginalAmount, tt.originalAmount)
			}
			if got.TotalSavings != got.OriginalAmount-got.TotalAmount {
				t.Errorf("TotalSavings = %v, want exact difference %v",
					got.TotalSavings, got.OriginalAmount-got.TotalAmount)
			}
			if got.TotalAmount > got.OriginalAmount {
				t.Errorf("TotalAmount %v exceeds OriginalAmount %v", got.TotalAmount, got.OriginalAmount)
			}
			if got.TotalSavings < 0 {
				t.Errorf("negative TotalSavings: %v", got.TotalSavings)
			}
		})
	}
}

func TestMergeCustomerDefaults(t *testing.T) {
	got := MergeCustomerDefaults(models.CustomerInfo{})
	if got.Name != "Guest Customer" {
		t.Errorf("default name = %q", got.Name)
	}
	if got.Phone == "" {
		t.Error("default phone is empty")
	}
	if got.PaymentMethod != models.PaymentCash {
		t.Errorf("default payment = %q", got.PaymentMethod)
	}

	full := models.CustomerInfo{Name: "Ann", Phone: "555", PaymentMethod: models.PaymentCard}
	if got := MergeCustomerDefaults(full); got != full {
		t.Errorf("supplied fields were overwritten: %+v", got)
	}
}

func TestBuildOrderFromCart(t *testing.T) {
	now := time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)
	cart := models.CartState{Lines: []models.CartLine{line(1, "Pizza", 12.99, 10, 2)}}
	customer := models.CustomerInfo{Name: "Ann", Phone: "+1234567890"}

	order := BuildOrderFromCart(cart, customer, now)

	if order.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if order.SubmittedToAPI {
		t.Error("new order marked as submitted")
	}
	if !almostEqual(order.TotalAmount, 23.382) {
		t.Errorf("TotalAmount = %v, want 23.382", order.TotalAmount)
	}
	if !almostEqual(order.OriginalAmount, 25.98) {
		t.Errorf("OriginalAmount = %v, want 25.98", order.OriginalAmount)
	}
	if !almostEqual(order.TotalSavings, 2.598) {
		t.Errorf("TotalSavings = %v, want 2.598", order.TotalSavings)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.MenuID != 1 || item.Quantity != 2 || item.Name != "Pizza" {
		t.Errorf("unexpected item snapshot: %+v", item)
	}
	if !almostEqual(item.Price, 12.99*0.9) || item.OriginalPrice != 12.99 || item.Discount != 10 {
		t.Errorf("unexpected item pricing: %+v", item)
	}
	if !order.EstimatedDeliveryTime.Equal(now.Add(35 * time.Minute)) {
		t.Errorf("ETA = %v, want now+35m", order.EstimatedDeliveryTime)
	}
	if order.OrderID != GenerateOrderID(cart.Lines, "+1234567890") {
		t.Errorf("order id not derived from cart and phone: %s", order.OrderID)
	}
}

func TestBuildOrderFromCart_SnapshotIsolation(t *testing.T) {
	cart := models.CartState{Lines: []models.CartLine{line(1, "Pizza", 12.99, 10, 2)}}
	order := BuildOrderFromCart(cart, models.CustomerInfo{Phone: "555"}, time.Now())

	// Mutating the catalog item after checkout must not reach the order.
	cart.Lines[0].MenuItem.Price = 99
	cart.Lines[0].Quantity = 7

	if order.Items[0].OriginalPrice != 12.99 || order.Items[0].Quantity != 2 {
		t.Errorf("order item changed after cart mutation: %+v", order.Items[0])
	}
}
