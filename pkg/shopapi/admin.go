package shopapi

import (
	"context"
	"net/url"
	"strconv"
)

// Admin-console CRUD. Every call rides the same transport: the server
// enforces staff permissions, the client only needs the session token.

// ProductInput is the writable product shape (category/subcategory by id).
type ProductInput struct {
	CategoryID    int64    `json:"category_id"`
	SubcategoryID *int64   `json:"subcategory_id,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         string   `json:"price"`
	Stock         int      `json:"stock"`
	IsAvailable   bool     `json:"is_available"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var product Product
	if err := c.post(ctx, "admin_create_product", "products/", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, slug string, input ProductInput) (*Product, error) {
	var product Product
	if err := c.patch(ctx, "admin_update_product", "products/"+url.PathEscape(slug)+"/", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, slug string) error {
	return c.delete(ctx, "admin_delete_product", "products/"+url.PathEscape(slug)+"/")
}

// CategoryInput is the writable category shape.
type CategoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var category Category
	if err := c.post(ctx, "admin_create_category", "categories/", input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, slug string, input CategoryInput) (*Category, error) {
	var category Category
	if err := c.patch(ctx, "admin_update_category", "categories/"+url.PathEscape(slug)+"/", input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, slug string) error {
	return c.delete(ctx, "admin_delete_category", "categories/"+url.PathEscape(slug)+"/")
}

// BannerInput is the writable banner shape.
type BannerInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	IsActive    bool   `json:"is_active"`
}

func (c *Client) CreateBanner(ctx context.Context, input BannerInput) (*Banner, error) {
	var banner Banner
	if err := c.post(ctx, "admin_create_banner", "banners/", input, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (c *Client) UpdateBanner(ctx context.Context, id int64, input BannerInput) (*Banner, error) {
	var banner Banner
	if err := c.patch(ctx, "admin_update_banner", "banners/"+formatID(id)+"/", input, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (c *Client) DeleteBanner(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_banner", "banners/"+formatID(id)+"/")
}

// CouponInput is the writable coupon shape.
type CouponInput struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discount_type"`
	DiscountValue string `json:"discount_value"`
	MinPurchase   string `json:"min_purchase,omitempty"`
	ExpiryDate    string `json:"expiry_date"`
	IsActive      bool   `json:"is_active"`
}

func (c *Client) ListCoupons(ctx context.Context) ([]Coupon, error) {
	var coupons []Coupon
	if err := c.getList(ctx, "admin_list_coupons", "coupons/", &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (c *Client) CreateCoupon(ctx context.Context, input CouponInput) (*Coupon, error) {
	var coupon Coupon
	if err := c.post(ctx, "admin_create_coupon", "coupons/", input, &coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (c *Client) UpdateCoupon(ctx context.Context, id int64, input CouponInput) (*Coupon, error) {
	var coupon Coupon
	if err := c.patch(ctx, "admin_update_coupon", "coupons/"+formatID(id)+"/", input, &coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (c *Client) DeleteCoupon(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_coupon", "coupons/"+formatID(id)+"/")
}

// CouponRuleInput is the writable coupon-rule shape.
type CouponRuleInput struct {
	Name         string `json:"name"`
	TriggerEvent string `json:"trigger_event"`
	MinAmount    string `json:"min_amount,omitempty"`
	CouponID     int64  `json:"coupon"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	IsActive     bool   `json:"is_active"`
}

func (c *Client) ListCouponRules(ctx context.Context) ([]CouponRule, error) {
	var rules []CouponRule
	if err := c.getList(ctx, "admin_list_coupon_rules", "coupon-rules/", &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (c *Client) CreateCouponRule(ctx context.Context, input CouponRuleInput) (*CouponRule, error) {
	var rule CouponRule
	if err := c.post(ctx, "admin_create_coupon_rule", "coupon-rules/", input, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (c *Client) DeleteCouponRule(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_coupon_rule", "coupon-rules/"+formatID(id)+"/")
}

// ShippingLocationInput is the writable delivery-zone shape.
type ShippingLocationInput struct {
	Name     string `json:"name"`
	Charge   string `json:"charge"`
	IsActive bool   `json:"is_active"`
}

func (c *Client) CreateShippingLocation(ctx context.Context, input ShippingLocationInput) (*ShippingLocation, error) {
	var location ShippingLocation
	if err := c.post(ctx, "admin_create_shipping_location", "shipping-locations/", input, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

func (c *Client) UpdateShippingLocation(ctx context.Context, id int64, input ShippingLocationInput) (*ShippingLocation, error) {
	var location ShippingLocation
	if err := c.patch(ctx, "admin_update_shipping_location", "shipping-locations/"+formatID(id)+"/", input, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

func (c *Client) DeleteShippingLocation(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_shipping_location", "shipping-locations/"+formatID(id)+"/")
}

// FooterSectionInput is the writable footer-section shape.
type FooterSectionInput struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

func (c *Client) CreateFooterSection(ctx context.Context, input FooterSectionInput) (*FooterSection, error) {
	var section FooterSection
	if err := c.post(ctx, "admin_create_footer_section", "footer-sections/", input, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

func (c *Client) DeleteFooterSection(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_footer_section", "footer-sections/"+formatID(id)+"/")
}

// FooterLinkInput is the writable footer-link shape.
type FooterLinkInput struct {
	SectionID int64  `json:"section"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Priority  int    `json:"priority"`
}

func (c *Client) CreateFooterLink(ctx context.Context, input FooterLinkInput) (*FooterLink, error) {
	var link FooterLink
	if err := c.post(ctx, "admin_create_footer_link", "footer-links/", input, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) DeleteFooterLink(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_footer_link", "footer-links/"+formatID(id)+"/")
}

// UpdateReturnStatus moves a return request to a new status.
func (c *Client) UpdateReturnStatus(ctx context.Context, id int64, status string) (*ReturnRequest, error) {
	body := map[string]string{"status": status}
	var request ReturnRequest
	if err := c.patch(ctx, "admin_update_return_status", "returns/"+formatID(id)+"/", body, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// SiteSettingsInput carries the editable site-settings fields.
type SiteSettingsInput struct {
	BrandName        string `json:"brand_name,omitempty"`
	AboutText        string `json:"about_text,omitempty"`
	FooterAddress    string `json:"footer_address,omitempty"`
	FooterPhone      string `json:"footer_phone,omitempty"`
	FooterEmail      string `json:"footer_email,omitempty"`
	InstagramURL     string `json:"instagram_url,omitempty"`
	TwitterURL       string `json:"twitter_url,omitempty"`
	FacebookURL      string `json:"facebook_url,omitempty"`
	DeliveryCharge   string `json:"delivery_charge,omitempty"`
	ReturnWindowDays *int   `json:"return_window_days,omitempty"`
}

func (c *Client) UpdateSiteSettings(ctx context.Context, input SiteSettingsInput) (*SiteSettings, error) {
	var settings SiteSettings
	if err := c.patch(ctx, "admin_update_site_settings", "site-settings/", input, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
