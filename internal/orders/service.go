package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
)

type ordersAPI interface {
	ListOrders(ctx context.Context) ([]shopapi.Order, error)
	GetOrder(ctx context.Context, id int64) (*shopapi.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*shopapi.Order, error)
	ListReturns(ctx context.Context) ([]shopapi.ReturnRequest, error)
	CreateReturn(ctx context.Context, orderID int64, reason string) (*shopapi.ReturnRequest, error)
}

type returnWindowSource interface {
	ReturnWindowDays(ctx context.Context) (int, error)
}

// Service reads and mutates the signed-in user's order history.
type Service struct {
	api      ordersAPI
	settings returnWindowSource
	log      *logger.Logger
	now      func() time.Time
}

// NewService builds an orders service over the given API client.
func NewService(api ordersAPI, settings returnWindowSource, log *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings source required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, settings: settings, log: log, now: time.Now}, nil
}

// List fetches the order history, newest first as the server returns it.
func (s *Service) List(ctx context.Context) ([]shopapi.Order, error) {
	return s.api.ListOrders(ctx)
}

// Get fetches one order by id.
func (s *Service) Get(ctx context.Context, id int64) (*shopapi.Order, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return s.api.GetOrder(ctx, id)
}

// Cancel marks a pending order as cancelled. Orders past the pending stage
// cannot be cancelled by the shopper.
func (s *Service) Cancel(ctx context.Context, id int64) (*shopapi.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != shopapi.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only pending orders can be cancelled").
			WithDetails(map[string]any{"status": order.Status})
	}
	updated, err := s.api.UpdateOrderStatus(ctx, id, shopapi.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.log.Info(s.log.WithOrderID(ctx, fmt.Sprintf("%d", id)), "order cancelled")
	return updated, nil
}

// ReturnEligible reports whether a return may still be requested for the
// order: it must be delivered and within the return window counted from its
// last status change.
func (s *Service) ReturnEligible(ctx context.Context, order *shopapi.Order) (bool, error) {
	if order == nil || order.Status != shopapi.OrderStatusDelivered {
		return false, nil
	}
	days, err := s.settings.ReturnWindowDays(ctx)
	if err != nil {
		return false, err
	}
	if days <= 0 {
		return false, nil
	}
	deliveredAt, ok := parseOrderTime(order.UpdatedAt)
	if !ok {
		// No usable timestamp, let the server make the call.
		return true, nil
	}
	deadline := deliveredAt.AddDate(0, 0, days)
	return s.now().Before(deadline), nil
}

// RequestReturn files a return for a delivered order.
func (s *Service) RequestReturn(ctx context.Context, orderID int64, reason string) (*shopapi.ReturnRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "return reason is required")
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	eligible, err := s.ReturnEligible(ctx, order)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order is not eligible for return")
	}

	request, err := s.api.CreateReturn(ctx, orderID, reason)
	if err != nil {
		return nil, err
	}
	s.log.Info(s.log.WithOrderID(ctx, fmt.Sprintf("%d", orderID)), "return requested")
	return request, nil
}

// ListReturns fetches the user's return requests.
func (s *Service) ListReturns(ctx context.Context) ([]shopapi.ReturnRequest, error) {
	return s.api.ListReturns(ctx)
}

var orderTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseOrderTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range orderTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
