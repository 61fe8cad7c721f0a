package orders

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobande/taskrr/internal/api"
	"github.com/sobande/taskrr/internal/apperrors"
	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/notify"
)

// fakeAPI records calls and delegates to per-method stubs.
type fakeAPI struct {
	calls []string

	createFn func(req api.CreateOrderRequest) (*models.Order, error)
	getFn    func(orderID string) (*models.Order, error)
	searchFn func(query string) ([]models.Order, error)
	listFn   func(providerID string, page, pageSize int) (*api.OrderPage, error)
}

func (f *fakeAPI) CreateOrder(_ context.Context, req api.CreateOrderRequest) (*models.Order, error) {
	f.calls = append(f.calls, "create:"+req.ServiceProviderID)
	if f.createFn != nil {
		return f.createFn(req)
	}
	return &models.Order{ID: "order-" + req.ServiceProviderID, ServiceProviderID: req.ServiceProviderID, Status: models.OrderStatusPending}, nil
}

func (f *fakeAPI) GetOrder(_ context.Context, orderID string) (*models.Order, error) {
	f.calls = append(f.calls, "get:"+orderID)
	if f.getFn != nil {
		return f.getFn(orderID)
	}
	return &models.Order{ID: orderID}, nil
}

func (f *fakeAPI) SearchOrders(_ context.Context, query string) ([]models.Order, error) {
	f.calls = append(f.calls, "search:"+query)
	if f.searchFn != nil {
		return f.searchFn(query)
	}
	return nil, nil
}

func (f *fakeAPI) ListProviderOrders(_ context.Context, providerID string, page, pageSize int) (*api.OrderPage, error) {
	f.calls = append(f.calls, fmt.Sprintf("list:%s:%d", providerID, page))
	if f.listFn != nil {
		return f.listFn(providerID, page, pageSize)
	}
	return &api.OrderPage{Page: page}, nil
}

func (f *fakeAPI) AcceptOrder(_ context.Context, orderID string, _ map[string]any) (*models.Order, error) {
	f.calls = append(f.calls, "accept:"+orderID)
	return &models.Order{ID: orderID, Status: models.OrderStatusConfirmed}, nil
}

func (f *fakeAPI) RejectOrder(_ context.Context, orderID string, _ map[string]any) (*models.Order, error) {
	f.calls = append(f.calls, "reject:"+orderID)
	return &models.Order{ID: orderID, Status: models.OrderStatusRejected}, nil
}

func (f *fakeAPI) CompleteOrder(_ context.Context, orderID string, _ map[string]any) (*models.Order, error) {
	f.calls = append(f.calls, "complete:"+orderID)
	return &models.Order{ID: orderID, Status: models.OrderStatusCompleted}, nil
}

func (f *fakeAPI) MarkOrderReady(_ context.Context, orderID string, _ map[string]any) (*models.Order, error) {
	f.calls = append(f.calls, "ready:"+orderID)
	return &models.Order{ID: orderID, Status: models.OrderStatusReady}, nil
}

func (f *fakeAPI) UpdateOrderStatus(_ context.Context, orderID string, status models.OrderStatus, _ map[string]any) (*models.Order, error) {
	f.calls = append(f.calls, fmt.Sprintf("status:%s:%s", orderID, status))
	return &models.Order{ID: orderID, Status: status}, nil
}

func twoProviderCart() models.Cart {
	return models.Cart{Items: []models.CartItem{
		{ServiceID: "svc-1", ServiceProviderID: "prov-a", Name: "Cleaning", Quantity: 1, UnitPrice: 40},
		{ServiceID: "svc-2", ServiceProviderID: "prov-b", Name: "Plumbing", Quantity: 1, UnitPrice: 90},
		{ServiceID: "svc-3", ServiceProviderID: "prov-a", Name: "Ironing", Quantity: 2, UnitPrice: 10},
	}}
}

func TestCheckoutSplitsPerProvider(t *testing.T) {
	fake := &fakeAPI{}
	bus := notify.NewBus(slog.Default())
	svc := NewService(fake, bus, slog.Default())

	result, err := svc.Checkout(context.Background(), twoProviderCart())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Len(t, result.Created, 2)
	assert.Equal(t, []string{"create:prov-a", "create:prov-b"}, fake.calls)
}

func TestCheckoutPartialFailure(t *testing.T) {
	fake := &fakeAPI{
		createFn: func(req api.CreateOrderRequest) (*models.Order, error) {
			if req.ServiceProviderID == "prov-b" {
				return nil, apperrors.Server("provider unavailable")
			}
			return &models.Order{ID: "order-a", ServiceProviderID: req.ServiceProviderID}, nil
		},
	}
	svc := NewService(fake, notify.NewBus(slog.Default()), slog.Default())

	result, err := svc.Checkout(context.Background(), twoProviderCart())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Len(t, result.Created, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "prov-b", result.Failures[0].ServiceProviderID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := NewService(&fakeAPI{}, notify.NewBus(slog.Default()), slog.Default())
	_, err := svc.Checkout(context.Background(), models.Cart{})
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
}

func TestCheckoutEmitsLocalNotification(t *testing.T) {
	fake := &fakeAPI{}
	bus := notify.NewBus(slog.Default())
	store := notify.NewStore()
	bus.Subscribe(notify.NotificationDelivered{}.Topic(), func(e notify.Event) {
		store.Add(e.(notify.NotificationDelivered).Payload)
	})
	svc := NewService(fake, bus, slog.Default())

	_, err := svc.Checkout(context.Background(), twoProviderCart())
	require.NoError(t, err)

	list := store.List()
	require.Len(t, list, 2)
	for _, n := range list {
		assert.Equal(t, models.NotificationTypeOrder, n.Type)
	}
}

func TestLifecycleGating(t *testing.T) {
	fake := &fakeAPI{}
	svc := NewService(fake, notify.NewBus(slog.Default()), slog.Default())
	ctx := context.Background()

	// Legal: pending order accepted.
	updated, err := svc.Accept(ctx, &models.Order{ID: "o1", Status: models.OrderStatusPending}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)

	// Illegal: completing a pending order never reaches the API.
	fake.calls = nil
	_, err = svc.Complete(ctx, &models.Order{ID: "o1", Status: models.OrderStatusPending}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	assert.Empty(t, fake.calls)

	// Generic transition endpoint honors the table too.
	_, err = svc.Transition(ctx, &models.Order{ID: "o1", Status: models.OrderStatusProcessing}, models.OrderStatusInProgress, nil)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, &models.Order{ID: "o1", Status: models.OrderStatusCompleted}, models.OrderStatusPending, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}
