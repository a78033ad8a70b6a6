package client

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"storefront-order-api/models"
)

// OrderBackend submits created orders to the upstream order service. There
// is no retry or backoff: a failed submission leaves the order pending and
// the caller surfaces a notification to the user, who may retry checkout.
type OrderBackend struct {
	baseURL string
	client  *resty.Client
}

func NewOrderBackend(baseURL string) *OrderBackend {
	return &OrderBackend{
		baseURL: baseURL,
		client:  resty.New().SetTimeout(10 * time.Second),
	}
}

// Enabled reports whether an upstream URL is configured. When it is not,
// checkout completes locally and orders stay pending/unsubmitted.
func (b *OrderBackend) Enabled() bool {
	return b.baseURL != ""
}

// Submit POSTs the order to the upstream. Any non-2xx response is an error.
func (b *OrderBackend) Submit(order models.Order) error {
	resp, err := b.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(order).
		Post(b.baseURL + "/orders")
	if err != nil {
		return fmt.Errorf("submit order %s: %w", order.OrderID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("submit order %s: upstream responded %d: %s",
			order.OrderID, resp.StatusCode(), resp.String())
	}
	return nil
}
