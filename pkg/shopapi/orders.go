package shopapi

import (
	"context"
	"strconv"
)

// ListOrders fetches the authenticated user's order history (admins see all).
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.getList(ctx, "list_orders", "orders/", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches a single order. Guests may fetch by id to drive the
// payment flow.
func (c *Client) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var order Order
	if err := c.get(ctx, "get_order", orderPath(id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus PATCHes the order's status field.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*Order, error) {
	var order Order
	body := map[string]string{"status": status}
	if err := c.patch(ctx, "update_order_status", orderPath(id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListReturns fetches the user's return requests.
func (c *Client) ListReturns(ctx context.Context) ([]ReturnRequest, error) {
	var returns []ReturnRequest
	if err := c.getList(ctx, "list_returns", "returns/", &returns); err != nil {
		return nil, err
	}
	return returns, nil
}

// CreateReturn files a return request against a delivered order.
func (c *Client) CreateReturn(ctx context.Context, orderID int64, reason string) (*ReturnRequest, error) {
	var request ReturnRequest
	body := map[string]any{"order": orderID, "reason": reason}
	if err := c.post(ctx, "create_return", "returns/", body, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func orderPath(id int64) string {
	return "orders/" + strconv.FormatInt(id, 10) + "/"
}
