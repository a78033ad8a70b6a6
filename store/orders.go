package store

import (
	"errors"
	"strings"
	"sync"

	"storefront-order-api/models"
	"storefront-order-api/statemachine"
)

const ordersKey = "orders"

var (
	// ErrOrderNotFound is returned when no order matches the given orderId.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNotCancellable is returned when a cancel request reaches an order
	// that is already being fulfilled or is in a terminal state.
	ErrNotCancellable = errors.New("order can only be cancelled while pending or confirmed")
)

// OrderStore owns order history and the valid-customer registry. Orders are
// kept newest first. Status changes go through the lifecycle state machine;
// the only exception is MarkOrderAsSubmitted, which models a successful
// backend hand-off as an unconditional confirmation.
type OrderStore struct {
	mu    sync.Mutex
	repo  *SnapshotRepository
	state models.OrderState
}

// NewOrderStore restores the persisted order state, starting empty when no
// usable snapshot exists (absent key or stale schema version).
func NewOrderStore(repo *SnapshotRepository) (*OrderStore, error) {
	s := &OrderStore{repo: repo}
	if _, err := repo.Load(ordersKey, &s.state); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *OrderStore) save() error {
	return s.repo.Save(ordersKey, &s.state)
}

// AddOrder inserts an order at the head of the history. An order with the
// same deterministic OrderID is replaced in place instead, so re-checking
// out an identical cart acts as an idempotent retry rather than a duplicate.
func (s *OrderStore) AddOrder(order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Orders {
		if s.state.Orders[i].OrderID == order.OrderID {
			s.state.Orders[i] = order
			return s.save()
		}
	}
	s.state.Orders = append([]models.Order{order}, s.state.Orders...)
	return s.save()
}

// UpdateOrderStatus moves an order to a new status, rejecting transitions
// the lifecycle state machine does not allow.
func (s *OrderStore) UpdateOrderStatus(orderID string, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Orders {
		if s.state.Orders[i].OrderID != orderID {
			continue
		}
		if err := statemachine.CanTransition(s.state.Orders[i].Status, status); err != nil {
			return err
		}
		s.state.Orders[i].Status = status
		return s.save()
	}
	return ErrOrderNotFound
}

// CancelOrder cancels an order that has not yet entered fulfillment. Orders
// in preparing, ready, delivered or already cancelled are left untouched.
func (s *OrderStore) CancelOrder(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Orders {
		if s.state.Orders[i].OrderID != orderID {
			continue
		}
		status := s.state.Orders[i].Status
		if status != models.StatusPending && status != models.StatusConfirmed {
			return ErrNotCancellable
		}
		s.state.Orders[i].Status = models.StatusCancelled
		return s.save()
	}
	return ErrOrderNotFound
}

// MarkOrderAsSubmitted records a successful backend submission. The order is
// forced to confirmed regardless of its prior status.
func (s *OrderStore) MarkOrderAsSubmitted(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Orders {
		if s.state.Orders[i].OrderID != orderID {
			continue
		}
		s.state.Orders[i].SubmittedToAPI = true
		s.state.Orders[i].Status = models.StatusConfirmed
		return s.save()
	}
	return ErrOrderNotFound
}

// RemoveOrder deletes an order from history unconditionally.
func (s *OrderStore) RemoveOrder(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Orders {
		if s.state.Orders[i].OrderID == orderID {
			s.state.Orders = append(s.state.Orders[:i], s.state.Orders[i+1:]...)
			return s.save()
		}
	}
	return ErrOrderNotFound
}

// RemoveCancelledOrders drops every cancelled order from history.
func (s *OrderStore) RemoveCancelledOrders() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Orders[:0]
	removed := 0
	for _, o := range s.state.Orders {
		if o.Status == models.StatusCancelled {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	s.state.Orders = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save()
}

// ClearOrders empties the order history. The valid-customer registry is kept.
func (s *OrderStore) ClearOrders() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Orders = nil
	return s.save()
}

// GetOrders returns a copy of the history, newest first.
func (s *OrderStore) GetOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Order, len(s.state.Orders))
	copy(out, s.state.Orders)
	return out
}

// GetOrderByID returns the order for orderID, with ok=false when absent.
func (s *OrderStore) GetOrderByID(orderID string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.state.Orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// AddValidCustomer upserts a customer by phone: an existing record with the
// same phone is replaced, otherwise the customer is appended.
func (s *OrderStore) AddValidCustomer(customer models.CustomerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.ValidCustomers {
		if s.state.ValidCustomers[i].Phone == customer.Phone {
			s.state.ValidCustomers[i] = customer
			return s.save()
		}
	}
	s.state.ValidCustomers = append(s.state.ValidCustomers, customer)
	return s.save()
}

// IsValidCustomer reports whether a stored customer matches the phone
// exactly and the name case-insensitively.
func (s *OrderStore) IsValidCustomer(phone, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.state.ValidCustomers {
		if c.Phone == phone && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// GetValidCustomer returns the first stored customer with the given phone,
// with ok=false when none matches.
func (s *OrderStore) GetValidCustomer(phone string) (models.CustomerInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.state.ValidCustomers {
		if c.Phone == phone {
			return c, true
		}
	}
	return models.CustomerInfo{}, false
}
