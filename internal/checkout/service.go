package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/atelierlabs/storefront/internal/cart"
	"github.com/atelierlabs/storefront/internal/validate"
	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
	"github.com/shopspring/decimal"
)

type checkoutAPI interface {
	ApplyCoupon(ctx context.Context, code string, amount decimal.Decimal) (*shopapi.CouponDiscount, error)
	CreateOrder(ctx context.Context, input shopapi.OrderCreate) (*shopapi.Order, error)
}

type deliveryChargeSource interface {
	DeliveryCharge(ctx context.Context) (decimal.Decimal, error)
}

// AppliedCoupon is the active discount descriptor returned by server-side
// coupon validation. It lives only for the duration of a checkout attempt.
type AppliedCoupon struct {
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
}

// Quote is the priced view of the current cart.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Recipient carries the delivery details collected at checkout.
type Recipient struct {
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"address_line_1" validate:"required"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Country      string `json:"country" validate:"required"`
}

// Service computes order totals and places orders. The total is a pure
// function of the cart, the applied coupon, and the shipping selection.
type Service struct {
	api      checkoutAPI
	cart     *cart.Service
	settings deliveryChargeSource
	log      *logger.Logger

	mu       sync.Mutex
	coupon   *AppliedCoupon
	shipping *shopapi.ShippingLocation
}

// NewService builds a checkout service over the given cart and API client.
func NewService(api checkoutAPI, cartSvc *cart.Service, settings deliveryChargeSource, log *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings source required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, cart: cartSvc, settings: settings, log: log}, nil
}

// ApplyCoupon validates the code against the server using the current cart
// subtotal. The code is uppercased before submission. A rejected code clears
// any previously applied coupon and the server's message is returned
// unchanged.
func (s *Service) ApplyCoupon(ctx context.Context, code string) (*AppliedCoupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}

	discount, err := s.api.ApplyCoupon(ctx, code, s.cart.Subtotal())
	if err != nil {
		s.mu.Lock()
		s.coupon = nil
		s.mu.Unlock()
		return nil, err
	}

	applied := &AppliedCoupon{
		Code:          discount.Code,
		DiscountType:  discount.DiscountType,
		DiscountValue: discount.DiscountValue,
	}
	s.mu.Lock()
	s.coupon = applied
	s.mu.Unlock()

	s.log.Info(s.log.WithField(ctx, "coupon_code", applied.Code), "coupon applied")
	return applied, nil
}

// ClearCoupon drops the applied coupon, if any.
func (s *Service) ClearCoupon() {
	s.mu.Lock()
	s.coupon = nil
	s.mu.Unlock()
}

// Coupon returns the currently applied coupon, or nil.
func (s *Service) Coupon() *AppliedCoupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

// SelectShipping picks a shipping location. Passing nil reverts to the global
// delivery charge from site settings.
func (s *Service) SelectShipping(loc *shopapi.ShippingLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc == nil {
		s.shipping = nil
		return
	}
	copied := *loc
	s.shipping = &copied
}

// ShippingSelection returns the chosen shipping location, or nil when the
// global fallback applies.
func (s *Service) ShippingSelection() *shopapi.ShippingLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shipping == nil {
		return nil
	}
	copied := *s.shipping
	return &copied
}

// Discount computes the discount amount against the current subtotal. A
// percentage coupon recomputes live as the cart changes; a flat coupon is a
// fixed amount regardless of subtotal.
func (s *Service) Discount() decimal.Decimal {
	s.mu.Lock()
	coupon := s.coupon
	s.mu.Unlock()
	if coupon == nil {
		return decimal.Zero
	}
	switch coupon.DiscountType {
	case shopapi.DiscountPercentage:
		return s.cart.Subtotal().Mul(coupon.DiscountValue).Div(decimal.NewFromInt(100))
	case shopapi.DiscountFlat:
		return coupon.DiscountValue
	}
	return decimal.Zero
}

// Quote prices the current cart. Shipping comes from the selected location or
// falls back to the site-wide delivery charge. The total never goes below
// zero even when a flat discount exceeds the order value.
func (s *Service) Quote(ctx context.Context) (*Quote, error) {
	subtotal := s.cart.Subtotal()

	shipping, err := s.shippingCharge(ctx)
	if err != nil {
		return nil, err
	}

	discount := s.Discount()
	total := subtotal.Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return &Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	}, nil
}

func (s *Service) shippingCharge(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	selected := s.shipping
	s.mu.Unlock()
	if selected != nil {
		return selected.Charge, nil
	}
	charge, err := s.settings.DeliveryCharge(ctx)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery charge")
	}
	return charge, nil
}

// BuildOrder assembles the order-creation payload from the cart, the quote,
// and the recipient. It does not submit anything.
func (s *Service) BuildOrder(ctx context.Context, recipient Recipient) (*shopapi.OrderCreate, error) {
	if err := validate.Struct(recipient); err != nil {
		return nil, err
	}
	if s.cart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	quote, err := s.Quote(ctx)
	if err != nil {
		return nil, err
	}

	lines := s.cart.Lines()
	items := make([]shopapi.OrderItemInput, 0, len(lines))
	for _, line := range lines {
		items = append(items, shopapi.OrderItemInput{
			ProductSlug: line.Slug,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
			Size:        line.Size,
			Color:       line.Color,
		})
	}

	order := &shopapi.OrderCreate{
		FullName:       recipient.FullName,
		Email:          recipient.Email,
		Phone:          recipient.Phone,
		AddressLine1:   recipient.AddressLine1,
		AddressLine2:   recipient.AddressLine2,
		City:           recipient.City,
		State:          recipient.State,
		PostalCode:     recipient.PostalCode,
		Country:        recipient.Country,
		Items:          items,
		DiscountAmount: quote.Discount,
		ShippingPrice:  quote.Shipping,
		TotalPrice:     quote.Total,
	}
	if coupon := s.Coupon(); coupon != nil {
		order.CouponCode = coupon.Code
	}
	return order, nil
}

// PlaceOrder submits the order. On success the cart and the applied coupon
// are cleared; on failure both stay untouched so the user can retry.
func (s *Service) PlaceOrder(ctx context.Context, recipient Recipient) (*shopapi.Order, error) {
	payload, err := s.BuildOrder(ctx, recipient)
	if err != nil {
		return nil, err
	}

	order, err := s.api.CreateOrder(ctx, *payload)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		s.log.Error(ctx, "clear cart after order", err)
	}
	s.ClearCoupon()

	s.log.Info(s.log.WithOrderID(ctx, fmt.Sprintf("%d", order.ID)), "order placed")
	return order, nil
}
