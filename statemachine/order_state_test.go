package statemachine

import (
	"testing"

	"storefront-order-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"pending to confirmed", models.StatusPending, models.StatusConfirmed, true},
		{"confirmed to preparing", models.StatusConfirmed, models.StatusPreparing, true},
		{"preparing to ready", models.StatusPreparing, models.StatusReady, true},
		{"ready to delivered", models.StatusReady, models.StatusDelivered, true},
		{"pending to cancelled", models.StatusPending, models.StatusCancelled, true},
		{"confirmed to cancelled", models.StatusConfirmed, models.StatusCancelled, true},
		{"pending skips to preparing", models.StatusPending, models.StatusPreparing, false},
		{"preparing to cancelled", models.StatusPreparing, models.StatusCancelled, false},
		{"delivered to anything", models.StatusDelivered, models.StatusPending, false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusConfirmed, false},
		{"no self transition", models.StatusPending, models.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to)
			if tt.allowed && err != nil {
				t.Fatalf("expected transition %s -> %s to be allowed, got: %v", tt.from, tt.to, err)
			}
			if !tt.allowed && err == nil {
				t.Fatalf("expected transition %s -> %s to be rejected", tt.from, tt.to)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(models.StatusDelivered) {
		t.Fatal("delivered should be terminal")
	}
	if !IsTerminal(models.StatusCancelled) {
		t.Fatal("cancelled should be terminal")
	}
	if IsTerminal(models.StatusPending) {
		t.Fatal("pending should not be terminal")
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	if len(nexts) != 2 {
		t.Fatalf("expected 2 transitions out of pending, got %d", len(nexts))
	}
	if nexts := ValidTransitionsFrom(models.StatusDelivered); len(nexts) != 0 {
		t.Fatalf("expected no transitions out of delivered, got %v", nexts)
	}
}
