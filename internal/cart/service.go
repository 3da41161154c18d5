package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
	"github.com/atelierlabs/storefront/pkg/storage"
	"github.com/shopspring/decimal"
)

// Line is one purchasable selection. The unit price and display fields are
// captured from the product at add time so the cart renders without a live
// catalog call.
type Line struct {
	Key       string          `json:"key"`
	ProductID int64           `json:"product_id"`
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// LineTotal returns unit price times quantity for the line.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// VariantKey identifies a product plus its selected size and color. The same
// product in two sizes is tracked as two separate lines.
func VariantKey(productID int64, size, color string) string {
	return fmt.Sprintf("%d-%s-%s", productID, size, color)
}

// Service owns the cart line collection. Every mutation is written back to
// durable storage so the cart survives restarts.
type Service struct {
	store storage.Store
	log   *logger.Logger

	mu    sync.Mutex
	lines []Line
}

// NewService builds a cart service and rehydrates any previously stored
// lines. Missing or corrupt stored state is treated as an empty cart.
func NewService(ctx context.Context, store storage.Store, log *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("storage backend required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	s := &Service{store: store, log: log}
	s.rehydrate(ctx)
	return s, nil
}

func (s *Service) rehydrate(ctx context.Context) {
	raw, err := s.store.Get(ctx, storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn(s.log.WithField(ctx, "key", storage.KeyCart), "stored cart unreadable, starting empty")
		}
		return
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.log.Warn(s.log.WithField(ctx, "key", storage.KeyCart), "stored cart corrupt, starting empty")
		return
	}
	s.lines = lines
}

// Add puts quantity units of the product into the cart. An existing line with
// the same variant key absorbs the quantity instead of duplicating.
func (s *Service) Add(ctx context.Context, product *shopapi.Product, quantity int, size, color string) error {
	if product == nil {
		return fmt.Errorf("product required")
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := VariantKey(product.ID, size, color)
	for i := range s.lines {
		if s.lines[i].Key == key {
			s.lines[i].Quantity += quantity
			return s.persist(ctx)
		}
	}

	line := Line{
		Key:       key,
		ProductID: product.ID,
		Slug:      product.Slug,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
	}
	if product.Image != "" {
		line.ImageURL = product.Image
	} else if len(product.Images) > 0 {
		line.ImageURL = product.Images[0].Image
	}
	s.lines = append(s.lines, line)
	return s.persist(ctx)
}

// Remove drops the line with the given variant key. Removing an absent key is
// a no-op.
func (s *Service) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, key)
}

func (s *Service) removeLocked(ctx context.Context, key string) error {
	for i := range s.lines {
		if s.lines[i].Key == key {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// SetQuantity replaces the quantity on the matching line. Zero or negative
// quantities remove the line.
func (s *Service) SetQuantity(ctx context.Context, key string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, key)
	}
	for i := range s.lines {
		if s.lines[i].Key == key {
			s.lines[i].Quantity = quantity
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return s.persist(ctx)
}

// Lines returns a copy of the cart contents in insertion order.
func (s *Service) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Subtotal sums unit price times quantity across all lines.
func (s *Service) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// ItemCount sums quantities across all lines, not the number of distinct
// lines.
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (s *Service) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Service) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Put(ctx, storage.KeyCart, raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
