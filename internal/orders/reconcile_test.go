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
)

func newReconciler(fake *fakeAPI, providerID string) *Reconciler {
	return NewReconciler(fake, func() string { return providerID }, 50, 5, slog.Default())
}

func orderNotification(orderID, providerID string) models.Notification {
	data := map[string]any{"type": "order", "orderId": orderID}
	if providerID != "" {
		data["serviceProviderId"] = providerID
	}
	return models.Notification{
		ID:      "n1",
		Type:    models.NotificationTypeOrder,
		Title:   "New Order Received!",
		Message: "Someone placed an order",
		Data:    data,
	}
}

func TestOpenDirectFetchFirst(t *testing.T) {
	fake := &fakeAPI{}
	r := newReconciler(fake, "prov-1")

	outcome := r.Open(context.Background(), orderNotification("123", ""))

	assert.Equal(t, OutcomeDetail, outcome.Kind)
	require.NotNil(t, outcome.Order)
	assert.Equal(t, "123", outcome.Order.ID)
	// Direct fetch happens before any fallback path.
	require.NotEmpty(t, fake.calls)
	assert.Equal(t, "get:123", fake.calls[0])
	assert.Len(t, fake.calls, 1)
}

func TestOpenProviderMismatchSkipsNetwork(t *testing.T) {
	fake := &fakeAPI{}
	r := newReconciler(fake, "prov-1")

	outcome := r.Open(context.Background(), orderNotification("123", "prov-other"))

	assert.Equal(t, OutcomePreview, outcome.Kind)
	require.NotNil(t, outcome.Preview)
	assert.Equal(t, "123", outcome.Preview.OrderID)
	assert.Contains(t, outcome.Preview.Message, "permission")
	assert.Empty(t, fake.calls, "no network call may happen for a foreign provider's order")
}

func TestOpenFallsBackToSearch(t *testing.T) {
	fake := &fakeAPI{
		getFn: func(string) (*models.Order, error) { return nil, apperrors.ErrAccessDenied },
		searchFn: func(query string) ([]models.Order, error) {
			return []models.Order{{ID: query, Status: models.OrderStatusPending}}, nil
		},
	}
	r := newReconciler(fake, "prov-1")

	outcome := r.Open(context.Background(), orderNotification("123", "prov-1"))

	assert.Equal(t, OutcomeDetail, outcome.Kind)
	assert.Equal(t, []string{"get:123", "search:123"}, fake.calls)
}

func TestOpenFallsBackToPageScan(t *testing.T) {
	fake := &fakeAPI{
		getFn:    func(string) (*models.Order, error) { return nil, apperrors.ErrAccessDenied },
		searchFn: func(string) ([]models.Order, error) { return nil, nil },
		listFn: func(providerID string, page, pageSize int) (*api.OrderPage, error) {
			if page == 3 {
				return &api.OrderPage{Orders: []models.Order{{ID: "123"}}, Page: page}, nil
			}
			return &api.OrderPage{Orders: []models.Order{{ID: fmt.Sprintf("other-%d", page)}}, Page: page, HasMore: true}, nil
		},
	}
	r := newReconciler(fake, "prov-1")

	outcome := r.Open(context.Background(), orderNotification("123", "prov-1"))

	assert.Equal(t, OutcomeDetail, outcome.Kind)
	assert.Equal(t, []string{"get:123", "search:123", "list:prov-1:1", "list:prov-1:2", "list:prov-1:3"}, fake.calls)
}

func TestOpenScanIsBounded(t *testing.T) {
	fake := &fakeAPI{
		getFn:    func(string) (*models.Order, error) { return nil, apperrors.ErrAccessDenied },
		searchFn: func(string) ([]models.Order, error) { return nil, nil },
		listFn: func(providerID string, page, pageSize int) (*api.OrderPage, error) {
			return &api.OrderPage{Page: page, HasMore: true}, nil
		},
	}
	r := newReconciler(fake, "prov-1")

	outcome := r.Open(context.Background(), orderNotification("123", "prov-1"))

	assert.Equal(t, OutcomePreview, outcome.Kind)
	// get + search + 5 pages, never a 6th.
	assert.Len(t, fake.calls, 7)
}

func TestOpenEveryStepSwallowsErrors(t *testing.T) {
	fake := &fakeAPI{
		getFn:    func(string) (*models.Order, error) { return nil, apperrors.ErrConnectivity },
		searchFn: func(string) ([]models.Order, error) { return nil, apperrors.ErrConnectivity },
		listFn: func(string, int, int) (*api.OrderPage, error) {
			return nil, apperrors.ErrConnectivity
		},
	}
	r := newReconciler(fake, "prov-1")

	outcome := r.Open(context.Background(), orderNotification("123", ""))

	assert.Equal(t, OutcomePreview, outcome.Kind)
	require.NotNil(t, outcome.Preview)
	assert.Equal(t, "New Order Received!", outcome.Preview.Title)
}

func TestOpenWithoutOrderID(t *testing.T) {
	fake := &fakeAPI{}
	r := newReconciler(fake, "prov-1")

	outcome := r.Open(context.Background(), models.Notification{ID: "n1", Type: models.NotificationTypeMessage})

	assert.Equal(t, OutcomeError, outcome.Kind)
	assert.Empty(t, fake.calls)
}
