package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sobande/taskrr/internal/api"
	"github.com/sobande/taskrr/internal/apperrors"
	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/notify"
)

// API is the slice of the REST client the order service needs.
type API interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	SearchOrders(ctx context.Context, query string) ([]models.Order, error)
	ListProviderOrders(ctx context.Context, providerID string, page, pageSize int) (*api.OrderPage, error)
	AcceptOrder(ctx context.Context, orderID string, payload map[string]any) (*models.Order, error)
	RejectOrder(ctx context.Context, orderID string, payload map[string]any) (*models.Order, error)
	CompleteOrder(ctx context.Context, orderID string, payload map[string]any) (*models.Order, error)
	MarkOrderReady(ctx context.Context, orderID string, payload map[string]any) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, payload map[string]any) (*models.Order, error)
}

// Service wraps the REST client with lifecycle gating and multi-provider
// checkout. The transition table only gates optimistically; the server is
// the authority and may still reject a transition.
type Service struct {
	api API
	bus *notify.Bus
	log *slog.Logger
}

func NewService(apiClient API, bus *notify.Bus, log *slog.Logger) *Service {
	return &Service{api: apiClient, bus: bus, log: log}
}

// CheckoutFailure records one provider's failed order creation.
type CheckoutFailure struct {
	ServiceProviderID string
	Err               error
}

// CheckoutResult is the partial-success report for a checkout. Success is
// true only when every provider's order was created.
type CheckoutResult struct {
	Created  []models.Order
	Failures []CheckoutFailure
	Success  bool
}

// Checkout splits the cart into one order per provider and creates them
// sequentially. A failed provider does not abort the rest; the result lists
// both sides.
func (s *Service) Checkout(ctx context.Context, cart models.Cart) (*CheckoutResult, error) {
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	result := &CheckoutResult{}
	for _, providerID := range cart.ProviderIDs() {
		req := api.CreateOrderRequest{
			ServiceProviderID: providerID,
			Items:             cart.ItemsFor(providerID),
			DeliveryAddress:   cart.DeliveryAddress,
			Notes:             cart.Notes,
		}

		order, err := s.api.CreateOrder(ctx, req)
		if err != nil {
			s.log.Warn("order creation failed", slog.String("provider_id", providerID), slog.Any("error", err))
			result.Failures = append(result.Failures, CheckoutFailure{ServiceProviderID: providerID, Err: err})
			continue
		}

		result.Created = append(result.Created, *order)
		s.bus.Publish(notify.NotificationDelivered{Payload: models.NotificationPayload{
			Title: "Order placed",
			Body:  fmt.Sprintf("Your order %s has been placed", order.ID),
			Data: map[string]any{
				"type":              "order_placed",
				"orderId":           order.ID,
				"serviceProviderId": order.ServiceProviderID,
			},
		}})
	}

	result.Success = len(result.Failures) == 0
	return result, nil
}

func (s *Service) Accept(ctx context.Context, order *models.Order, payload map[string]any) (*models.Order, error) {
	if err := gate(order, models.OrderStatusConfirmed); err != nil {
		return nil, err
	}
	return s.api.AcceptOrder(ctx, order.ID, payload)
}

func (s *Service) Reject(ctx context.Context, order *models.Order, payload map[string]any) (*models.Order, error) {
	if err := gate(order, models.OrderStatusRejected); err != nil {
		return nil, err
	}
	return s.api.RejectOrder(ctx, order.ID, payload)
}

func (s *Service) Complete(ctx context.Context, order *models.Order, payload map[string]any) (*models.Order, error) {
	if err := gate(order, models.OrderStatusCompleted); err != nil {
		return nil, err
	}
	return s.api.CompleteOrder(ctx, order.ID, payload)
}

func (s *Service) MarkReady(ctx context.Context, order *models.Order, payload map[string]any) (*models.Order, error) {
	if err := gate(order, models.OrderStatusReady); err != nil {
		return nil, err
	}
	return s.api.MarkOrderReady(ctx, order.ID, payload)
}

// Transition moves an order to an arbitrary status via the generic
// transition endpoint.
func (s *Service) Transition(ctx context.Context, order *models.Order, next models.OrderStatus, payload map[string]any) (*models.Order, error) {
	if err := gate(order, next); err != nil {
		return nil, err
	}
	return s.api.UpdateOrderStatus(ctx, order.ID, next, payload)
}

func gate(order *models.Order, next models.OrderStatus) error {
	if order == nil || order.ID == "" {
		return fmt.Errorf("order identifier is required")
	}
	if !models.CanTransition(order.Status, next) {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, order.Status, next)
	}
	return nil
}
