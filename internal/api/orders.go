package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sobande/taskrr/internal/models"
)

// CreateOrderRequest carries one provider's slice of the cart. Checkout
// splits multi-provider carts into one of these per provider.
type CreateOrderRequest struct {
	ServiceProviderID string            `json:"service_provider_id"`
	Items             []models.CartItem `json:"items"`
	DeliveryAddress   string            `json:"delivery_address,omitempty"`
	Notes             string            `json:"notes,omitempty"`
}

type OrderPage struct {
	Orders  []models.Order `json:"orders"`
	Page    int            `json:"page"`
	HasMore bool           `json:"has_more"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, "/orders/"+orderID, nil, &order); err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return &order, nil
}

// SearchOrders looks an order up by free-form query, typically an order id
// from a notification payload.
func (c *Client) SearchOrders(ctx context.Context, query string) ([]models.Order, error) {
	q := url.Values{"q": {query}}
	var orders []models.Order
	if err := c.get(ctx, "/orders/search", q, &orders); err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	return orders, nil
}

// ListProviderOrders pages through the provider's orders, newest first.
func (c *Client) ListProviderOrders(ctx context.Context, providerID string, page, pageSize int) (*OrderPage, error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(pageSize)},
	}
	var result OrderPage
	if err := c.get(ctx, "/orders/provider/"+providerID, q, &result); err != nil {
		return nil, fmt.Errorf("list provider orders: %w", err)
	}
	return &result, nil
}

func (c *Client) AcceptOrder(ctx context.Context, orderID string, payload map[string]any) (*models.Order, error) {
	return c.lifecycle(ctx, orderID, "accept", payload)
}

func (c *Client) RejectOrder(ctx context.Context, orderID string, payload map[string]any) (*models.Order, error) {
	return c.lifecycle(ctx, orderID, "reject", payload)
}

func (c *Client) CompleteOrder(ctx context.Context, orderID string, payload map[string]any) (*models.Order, error) {
	return c.lifecycle(ctx, orderID, "complete", payload)
}

func (c *Client) MarkOrderReady(ctx context.Context, orderID string, payload map[string]any) (*models.Order, error) {
	return c.lifecycle(ctx, orderID, "ready", payload)
}

// UpdateOrderStatus hits the generic transition endpoint for statuses that
// have no dedicated action route.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, payload map[string]any) (*models.Order, error) {
	body := map[string]any{"status": status}
	for k, v := range payload {
		body[k] = v
	}
	var order models.Order
	if err := c.put(ctx, "/orders/"+orderID+"/status", body, &order); err != nil {
		return nil, fmt.Errorf("update order %s status: %w", orderID, err)
	}
	return &order, nil
}

func (c *Client) lifecycle(ctx context.Context, orderID, action string, payload map[string]any) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, "/orders/"+orderID+"/"+action, payload, &order); err != nil {
		return nil, fmt.Errorf("%s order %s: %w", action, orderID, err)
	}
	return &order, nil
}
