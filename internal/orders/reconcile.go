package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/notify"
)

const permissionMessage = "You don't have permission to view this order. Showing a summary from the notification instead."

type OutcomeKind string

const (
	OutcomeDetail  OutcomeKind = "detail"
	OutcomePreview OutcomeKind = "preview"
	OutcomeError   OutcomeKind = "error"
)

// Outcome is what a notification tap resolves to: the full order, a
// read-only preview built from payload fields, or a dismissible error. Never
// a panic; every step of the fallback chain swallows its own failure.
type Outcome struct {
	Kind    OutcomeKind
	Order   *models.Order
	Preview *models.OrderPreview
	Message string
}

// Reconciler resolves the order referenced by a notification. The fallback
// chain is: direct fetch, search by id, bounded page scan of the provider's
// orders, read-only preview.
type Reconciler struct {
	api        API
	providerID func() string
	pageSize   int
	maxPages   int
	log        *slog.Logger
}

func NewReconciler(apiClient API, providerID func() string, pageSize, maxPages int, log *slog.Logger) *Reconciler {
	return &Reconciler{
		api:        apiClient,
		providerID: providerID,
		pageSize:   pageSize,
		maxPages:   maxPages,
		log:        log,
	}
}

// Open resolves the order behind a tapped notification.
func (r *Reconciler) Open(ctx context.Context, n models.Notification) Outcome {
	data := notify.DecodeData(n.Data)
	if data.OrderID == "" {
		return Outcome{Kind: OutcomeError, Message: "This notification does not reference an order."}
	}

	// A payload addressed to a different provider can never be fetched with
	// our credentials, so skip the network entirely.
	if mine := r.providerID(); mine != "" && data.ServiceProviderID != "" && data.ServiceProviderID != mine {
		return r.preview(n, data)
	}

	if order, err := r.api.GetOrder(ctx, data.OrderID); err == nil {
		return Outcome{Kind: OutcomeDetail, Order: order}
	} else {
		r.log.Debug("direct order fetch failed", slog.String("order_id", data.OrderID), slog.Any("error", err))
	}

	if order := r.searchByID(ctx, data.OrderID); order != nil {
		return Outcome{Kind: OutcomeDetail, Order: order}
	}

	if order := r.scanProviderPages(ctx, data.OrderID); order != nil {
		return Outcome{Kind: OutcomeDetail, Order: order}
	}

	return r.preview(n, data)
}

func (r *Reconciler) searchByID(ctx context.Context, orderID string) *models.Order {
	matches, err := r.api.SearchOrders(ctx, orderID)
	if err != nil {
		r.log.Debug("order search failed", slog.String("order_id", orderID), slog.Any("error", err))
		return nil
	}
	for i := range matches {
		if matches[i].ID == orderID {
			return &matches[i]
		}
	}
	return nil
}

// scanProviderPages pages through the provider's order list looking for the
// id, stopping early on a match or when the server reports no more pages.
func (r *Reconciler) scanProviderPages(ctx context.Context, orderID string) *models.Order {
	providerID := r.providerID()
	if providerID == "" {
		return nil
	}

	for page := 1; page <= r.maxPages; page++ {
		result, err := r.api.ListProviderOrders(ctx, providerID, page, r.pageSize)
		if err != nil {
			r.log.Debug("provider order scan failed", slog.Int("page", page), slog.Any("error", err))
			return nil
		}
		for i := range result.Orders {
			if result.Orders[i].ID == orderID {
				return &result.Orders[i]
			}
		}
		if !result.HasMore {
			return nil
		}
	}
	return nil
}

func (r *Reconciler) preview(n models.Notification, data models.PayloadData) Outcome {
	summary := n.Message
	if data.CustomerName != "" {
		summary = fmt.Sprintf("%s (customer: %s)", summary, data.CustomerName)
	}
	return Outcome{
		Kind: OutcomePreview,
		Preview: &models.OrderPreview{
			OrderID:           data.OrderID,
			ServiceProviderID: data.ServiceProviderID,
			Title:             n.Title,
			Summary:           summary,
			Message:           permissionMessage,
		},
	}
}
