package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sobande/taskrr/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		payload      models.NotificationPayload
		wantType     models.NotificationType
		wantPriority models.NotificationPriority
	}{
		{
			name: "explicit order_received type",
			payload: models.NotificationPayload{
				Data: map[string]any{"type": "order_received"},
			},
			wantType:     models.NotificationTypeOrder,
			wantPriority: models.PriorityHigh,
		},
		{
			name: "sender id only",
			payload: models.NotificationPayload{
				Data: map[string]any{"senderId": "user-42"},
			},
			wantType:     models.NotificationTypeMessage,
			wantPriority: models.PriorityMedium,
		},
		{
			name: "order id without type",
			payload: models.NotificationPayload{
				Title: "Status update",
				Data:  map[string]any{"orderId": "123"},
			},
			wantType:     models.NotificationTypeOrder,
			wantPriority: models.PriorityMedium,
		},
		{
			name: "new order from title text",
			payload: models.NotificationPayload{
				Title: "New Order Received!",
				Data:  map[string]any{"orderId": "123"},
			},
			wantType:     models.NotificationTypeOrder,
			wantPriority: models.PriorityHigh,
		},
		{
			name: "payment keyword in body",
			payload: models.NotificationPayload{
				Title: "Heads up",
				Body:  "Your payment of 25.00 was processed",
			},
			wantType:     models.NotificationTypePayment,
			wantPriority: models.PriorityLow,
		},
		{
			name: "review id field",
			payload: models.NotificationPayload{
				Data: map[string]any{"reviewId": "rev-9"},
			},
			wantType:     models.NotificationTypeReview,
			wantPriority: models.PriorityLow,
		},
		{
			name:         "nothing matches",
			payload:      models.NotificationPayload{Title: "Scheduled maintenance tonight"},
			wantType:     models.NotificationTypeSystem,
			wantPriority: models.PriorityLow,
		},
		{
			name: "explicit type beats identifier fields",
			payload: models.NotificationPayload{
				Data: map[string]any{"type": "message", "orderId": "123"},
			},
			wantType:     models.NotificationTypeMessage,
			wantPriority: models.PriorityMedium,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.payload)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantPriority, got.Priority)
		})
	}
}

func TestDecodeDataWeaklyTyped(t *testing.T) {
	data := DecodeData(map[string]any{
		"orderId": 123,
		"type":    "order",
	})
	assert.Equal(t, "123", data.OrderID)
	assert.Equal(t, "order", data.Type)
}
