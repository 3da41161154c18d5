package shopapi

import (
	"github.com/shopspring/decimal"
)

// Discount types returned by coupon validation.
const (
	DiscountFlat       = "FLAT"
	DiscountPercentage = "PERCENTAGE"
)

// Order statuses used by the storefront.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Return request statuses.
const (
	ReturnStatusPending  = "Pending"
	ReturnStatusApproved = "Approved"
	ReturnStatusRejected = "Rejected"
)

// Product is a catalog entry. Amounts arrive as decimal strings and are
// parsed into decimal.Decimal to keep arithmetic exact.
type Product struct {
	ID          int64           `json:"id"`
	Category    *Category       `json:"category,omitempty"`
	Subcategory *SubCategory    `json:"subcategory,omitempty"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"is_available"`
	Image       string          `json:"image"`
	Images      []ProductImage  `json:"images,omitempty"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
}

type ProductImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

type Category struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Image         string        `json:"image,omitempty"`
	Subcategories []SubCategory `json:"subcategories,omitempty"`
}

type SubCategory struct {
	ID           int64  `json:"id"`
	CategoryID   int64  `json:"category,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
}

type Banner struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	IsActive    bool   `json:"is_active"`
}

// SiteSettings is the singleton global configuration record.
type SiteSettings struct {
	BrandName        string          `json:"brand_name"`
	AboutText        string          `json:"about_text"`
	FooterAddress    string          `json:"footer_address"`
	FooterPhone      string          `json:"footer_phone"`
	FooterEmail      string          `json:"footer_email"`
	InstagramURL     string          `json:"instagram_url"`
	TwitterURL       string          `json:"twitter_url"`
	FacebookURL      string          `json:"facebook_url"`
	DeliveryCharge   decimal.Decimal `json:"delivery_charge"`
	ReturnWindowDays int             `json:"return_window_days"`
}

// CouponDiscount is the payload returned by a successful coupon validation.
type CouponDiscount struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// Coupon is the full admin-side coupon record.
type Coupon struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinPurchase   decimal.Decimal `json:"min_purchase"`
	ExpiryDate    string          `json:"expiry_date"`
	IsActive      bool            `json:"is_active"`
}

// CouponRule triggers automatic coupon mailing server-side.
type CouponRule struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	TriggerEvent string          `json:"trigger_event"`
	MinAmount    decimal.Decimal `json:"min_amount"`
	CouponID     int64           `json:"coupon"`
	CouponCode   string          `json:"coupon_code,omitempty"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	IsActive     bool            `json:"is_active"`
}

type ShippingLocation struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Charge   decimal.Decimal `json:"charge"`
	IsActive bool            `json:"is_active"`
}

type FooterSection struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Priority int          `json:"priority"`
	Links    []FooterLink `json:"links,omitempty"`
}

type FooterLink struct {
	ID       int64  `json:"id"`
	Section  int64  `json:"section"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Priority int    `json:"priority"`
}

// OrderItemInput is one line of the order-creation payload.
type OrderItemInput struct {
	ProductSlug string          `json:"product_slug"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
}

// OrderCreate is the exact body posted to the order-creation endpoint.
type OrderCreate struct {
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	AddressLine1   string           `json:"address_line_1"`
	AddressLine2   string           `json:"address_line_2,omitempty"`
	City           string           `json:"city"`
	State          string           `json:"state"`
	PostalCode     string           `json:"postal_code"`
	Country        string           `json:"country"`
	Items          []OrderItemInput `json:"items"`
	CouponCode     string           `json:"coupon_code,omitempty"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	ShippingPrice  decimal.Decimal  `json:"shipping_price"`
	TotalPrice     decimal.Decimal  `json:"total_price"`
}

type OrderItem struct {
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Size         string          `json:"size,omitempty"`
	Color        string          `json:"color,omitempty"`
}

type Order struct {
	ID             int64           `json:"id"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	AddressLine1   string          `json:"address_line_1"`
	AddressLine2   string          `json:"address_line_2"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	PostalCode     string          `json:"postal_code"`
	Country        string          `json:"country"`
	Items          []OrderItem     `json:"items"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	ShippingPrice  decimal.Decimal `json:"shipping_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CouponCode     string          `json:"coupon_code"`
	Status         string          `json:"status"`
	PaymentMethod  string          `json:"payment_method"`
	IsPaid         bool            `json:"is_paid"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at,omitempty"`
}

type ReturnRequest struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"order"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	AdminNote string `json:"admin_note,omitempty"`
	CreatedAt string `json:"created_at"`
}

type Address struct {
	ID            int64  `json:"id,omitempty"`
	Label         string `json:"label,omitempty"`
	StreetAddress string `json:"street_address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" validate:"required"`
	Country       string `json:"country" validate:"required"`
	IsDefault     bool   `json:"is_default"`
}

// Review is one customer review on a product. Only verified purchasers may
// create one, and at most once per product; the server enforces both.
type Review struct {
	ID        int64  `json:"id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Image     string `json:"image,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ReviewInput is the review-creation payload.
type ReviewInput struct {
	ProductSlug string `json:"product_slug"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff,omitempty"`
}

// AuthResponse carries the session token and profile returned by login and
// register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfilePatch holds the mutable profile fields; nil fields are omitted.
type ProfilePatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}
