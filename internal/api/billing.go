package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sobande/taskrr/internal/models"
)

func (c *Client) ListTransactions(ctx context.Context, orderID string) ([]models.Transaction, error) {
	q := url.Values{}
	if orderID != "" {
		q.Set("order_id", orderID)
	}
	var txns []models.Transaction
	if err := c.get(ctx, "/transactions", q, &txns); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

func (c *Client) GetBillingSummary(ctx context.Context, providerID, period string) (*models.BillingSummary, error) {
	q := url.Values{"period": {period}}
	var summary models.BillingSummary
	if err := c.get(ctx, "/billing/"+providerID+"/summary", q, &summary); err != nil {
		return nil, fmt.Errorf("get billing summary: %w", err)
	}
	return &summary, nil
}

func (c *Client) ListPayoutMethods(ctx context.Context, providerID string) ([]models.PayoutMethod, error) {
	var methods []models.PayoutMethod
	if err := c.get(ctx, "/billing/"+providerID+"/payout-methods", nil, &methods); err != nil {
		return nil, fmt.Errorf("list payout methods: %w", err)
	}
	return methods, nil
}
