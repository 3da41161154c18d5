package shopapi

import (
	"context"

	"github.com/shopspring/decimal"
)

// applyCouponRequest mirrors the coupon-validation body: the candidate code
// and the current cart subtotal the server checks thresholds against.
type applyCouponRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// ApplyCoupon validates a coupon code against the current subtotal. The
// server is the sole authority; rejections come back as coded errors whose
// message is the server's own text.
func (c *Client) ApplyCoupon(ctx context.Context, code string, amount decimal.Decimal) (*CouponDiscount, error) {
	var discount CouponDiscount
	body := applyCouponRequest{Code: code, Amount: amount}
	if err := c.post(ctx, "apply_coupon", "coupons/apply/", body, &discount); err != nil {
		return nil, err
	}
	return &discount, nil
}

// ListShippingLocations fetches the selectable delivery zones.
func (c *Client) ListShippingLocations(ctx context.Context) ([]ShippingLocation, error) {
	var locations []ShippingLocation
	if err := c.getList(ctx, "list_shipping_locations", "shipping-locations/", &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// GetSiteSettings fetches the global configuration singleton.
func (c *Client) GetSiteSettings(ctx context.Context) (*SiteSettings, error) {
	var settings SiteSettings
	if err := c.get(ctx, "get_site_settings", "site-settings/", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// CreateOrder submits the assembled order payload and returns the created
// order (its id drives the payment flow).
func (c *Client) CreateOrder(ctx context.Context, input OrderCreate) (*Order, error) {
	var order Order
	if err := c.post(ctx, "create_order", "orders/", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
