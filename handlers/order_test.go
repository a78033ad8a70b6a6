package handlers_test

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-order-api/client"
	"storefront-order-api/handlers"
	"storefront-order-api/models"
	"storefront-order-api/routes"
	"storefront-order-api/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &store.StateSnapshot{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	item := models.MenuItem{
		Names:    datatypes.JSONMap{"en": "Margherita Pizza"},
		Price:    12.99,
		Discount: 10,
		IsActive: true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := store.NewSnapshotRepository(db)
	orders, err := store.NewOrderStore(repo)
	if err != nil {
		t.Fatalf("order store: %v", err)
	}

	r := gin.New()
	h := handlers.New(db, store.NewCartStore(repo), orders, client.NewOrderBackend(""))
	routes.SetupRoutes(r, h)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutFlow(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"menu_id": 1, "quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("add to cart: status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/checkout", gin.H{
		"name":  "Ann",
		"phone": "+1234567890",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout: status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode checkout response: %v", err)
	}
	order := resp.Order
	if order.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if math.Abs(order.TotalAmount-23.382) > 1e-9 {
		t.Errorf("total = %v, want 23.382", order.TotalAmount)
	}
	if math.Abs(order.TotalSavings-2.598) > 1e-9 {
		t.Errorf("savings = %v, want 2.598", order.TotalSavings)
	}

	// Cart is cleared after checkout.
	w = doJSON(t, r, http.MethodGet, "/api/cart", nil)
	var cart struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if cart.Count != 0 {
		t.Errorf("cart not cleared after checkout, %d lines left", cart.Count)
	}

	// Order is visible in history.
	w = doJSON(t, r, http.MethodGet, "/api/orders/"+order.OrderID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("order detail: status %d: %s", w.Code, w.Body.String())
	}
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	r := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/api/checkout", gin.H{"phone": "555"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdateOrderStatus_InvalidTransitionRejected(t *testing.T) {
	r := newTestServer(t)

	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"menu_id": 1, "quantity": 1})
	w := doJSON(t, r, http.MethodPost, "/api/checkout", gin.H{"phone": "555"})

	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodPut, "/api/orders/"+resp.Order.OrderID+"/status",
		gin.H{"status": "delivered"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/api/orders/"+resp.Order.OrderID+"/status",
		gin.H{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}
