package bridge

import (
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/notify"
)

func TestWebhookPushPublishesOnBus(t *testing.T) {
	bus := notify.NewBus(slog.Default())
	var received []models.NotificationPayload
	bus.Subscribe(notify.NotificationDelivered{}.Topic(), func(e notify.Event) {
		received = append(received, e.(notify.NotificationDelivered).Payload)
	})

	b := NewWebhookBridge(&models.Config{WebhookAddr: "127.0.0.1:0"}, bus, slog.Default())

	body := `{"id":"push-1","title":"New Order Received!","body":"order incoming","data":{"orderId":"123"}}`
	req := httptest.NewRequest("POST", "/push", strings.NewReader(body))
	rec := httptest.NewRecorder()
	b.handlePush(rec, req)

	assert.Equal(t, 202, rec.Code)
	require.Len(t, received, 1)
	assert.Equal(t, "push-1", received[0].ID)
	assert.Equal(t, "123", received[0].Data["orderId"])
}

func TestWebhookPushRejectsBadPayload(t *testing.T) {
	bus := notify.NewBus(slog.Default())
	b := NewWebhookBridge(&models.Config{WebhookAddr: "127.0.0.1:0"}, bus, slog.Default())

	req := httptest.NewRequest("POST", "/push", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	b.handlePush(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestWebhookPushAssignsID(t *testing.T) {
	bus := notify.NewBus(slog.Default())
	var got models.NotificationPayload
	bus.Subscribe(notify.NotificationDelivered{}.Topic(), func(e notify.Event) {
		got = e.(notify.NotificationDelivered).Payload
	})
	b := NewWebhookBridge(&models.Config{WebhookAddr: "127.0.0.1:0"}, bus, slog.Default())

	req := httptest.NewRequest("POST", "/push", strings.NewReader(`{"title":"hi"}`))
	rec := httptest.NewRecorder()
	b.handlePush(rec, req)

	assert.Equal(t, 202, rec.Code)
	assert.NotEmpty(t, got.ID)
}
