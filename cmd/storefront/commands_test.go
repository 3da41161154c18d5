package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atelierlabs/storefront/pkg/config"
	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
	"github.com/atelierlabs/storefront/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type orderPlaceBackend struct {
	createdOrder *shopapi.OrderCreate
}

func newOrderPlaceApp(t *testing.T) (*app, *orderPlaceBackend) {
	t.Helper()

	backend := &orderPlaceBackend{}
	router := chi.NewRouter()
	router.Post("/coupons/apply/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code":           "SAVE100",
			"discount_type":  "FLAT",
			"discount_value": "100.00",
		})
	})
	router.Get("/shipping-locations/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 2, "name": "Uptown", "charge": "120.00", "is_active": true},
		})
	})
	router.Get("/site-settings/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"brand_name":      "Atelier",
			"delivery_charge": "60.00",
		})
	})
	router.Post("/orders/", func(w http.ResponseWriter, r *http.Request) {
		var input shopapi.OrderCreate
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("decode order: %v", err)
		}
		backend.createdOrder = &input
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":          41,
			"status":      "Pending",
			"total_price": input.TotalPrice,
		})
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{}
	cfg.API.BaseURL = server.URL

	logg := logger.New(logger.Options{ServiceName: "storefront-test", Output: io.Discard})
	application, err := buildApp(context.Background(), cfg, store, nil, logg)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	return application, backend
}

func TestOrderPlaceCarriesCouponAndLocation(t *testing.T) {
	t.Parallel()

	application, backend := newOrderPlaceApp(t)
	ctx := context.Background()

	product := &shopapi.Product{
		ID: 1, Slug: "wool-coat", Name: "Wool Coat",
		Price: decimal.NewFromInt(500), Stock: 5, IsAvailable: true,
	}
	if err := application.cart.Add(ctx, product, 2, "M", "navy"); err != nil {
		t.Fatalf("cart add: %v", err)
	}

	err := application.run(ctx, []string{
		"order-place",
		"--name", "Ines Duarte",
		"--email", "ines@example.com",
		"--phone", "5551234",
		"--address1", "12 Rua Nova",
		"--city", "Lisbon",
		"--state", "Lisboa",
		"--postal", "1100",
		"--country", "PT",
		"--coupon", "save100",
		"--location", "2",
	})
	if err != nil {
		t.Fatalf("order-place: %v", err)
	}

	created := backend.createdOrder
	if created == nil {
		t.Fatal("no order was posted")
	}
	if created.CouponCode != "SAVE100" {
		t.Fatalf("expected coupon SAVE100, got %q", created.CouponCode)
	}
	if !created.DiscountAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected discount %s", created.DiscountAmount)
	}
	if !created.ShippingPrice.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected the selected location charge, got %s", created.ShippingPrice)
	}
	// 1000 subtotal + 120 shipping - 100 discount.
	if !created.TotalPrice.Equal(decimal.NewFromInt(1020)) {
		t.Fatalf("unexpected total %s", created.TotalPrice)
	}
	if !application.cart.IsEmpty() {
		t.Fatal("cart should be cleared after a placed order")
	}
}

func TestOrderPlaceWithoutLocationUsesGlobalCharge(t *testing.T) {
	t.Parallel()

	application, backend := newOrderPlaceApp(t)
	ctx := context.Background()

	product := &shopapi.Product{
		ID: 2, Slug: "silk-scarf", Name: "Silk Scarf",
		Price: decimal.NewFromInt(300), Stock: 3, IsAvailable: true,
	}
	if err := application.cart.Add(ctx, product, 1, "", ""); err != nil {
		t.Fatalf("cart add: %v", err)
	}

	err := application.run(ctx, []string{
		"order-place",
		"--name", "Ines Duarte",
		"--email", "ines@example.com",
		"--phone", "5551234",
		"--address1", "12 Rua Nova",
		"--city", "Lisbon",
		"--state", "Lisboa",
		"--postal", "1100",
		"--country", "PT",
	})
	if err != nil {
		t.Fatalf("order-place: %v", err)
	}

	created := backend.createdOrder
	if created == nil {
		t.Fatal("no order was posted")
	}
	if created.CouponCode != "" {
		t.Fatalf("expected no coupon, got %q", created.CouponCode)
	}
	if !created.ShippingPrice.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected global delivery charge, got %s", created.ShippingPrice)
	}
	if !created.TotalPrice.Equal(decimal.NewFromInt(360)) {
		t.Fatalf("unexpected total %s", created.TotalPrice)
	}
}
