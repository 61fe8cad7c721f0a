package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		want   []OrderStatus
	}{
		{
			name:   "pending",
			status: OrderStatusPending,
			want:   []OrderStatus{OrderStatusConfirmed, OrderStatusRejected, OrderStatusCancelled},
		},
		{
			name:   "confirmed",
			status: OrderStatusConfirmed,
			want:   []OrderStatus{OrderStatusProcessing, OrderStatusCancelled},
		},
		{
			name:   "processing",
			status: OrderStatusProcessing,
			want:   []OrderStatus{OrderStatusReady, OrderStatusPackingInProgress, OrderStatusCancelled, OrderStatusInProgress},
		},
		{
			name:   "in transit",
			status: OrderStatusInTransit,
			want:   []OrderStatus{OrderStatusDelivered, OrderStatusCancelled},
		},
		{
			name:   "delivered",
			status: OrderStatusDelivered,
			want:   []OrderStatus{OrderStatusCompleted},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, ValidTransitions(tt.status))
		})
	}
}

func TestValidTransitionsTerminal(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled, OrderStatusRejected} {
		assert.Empty(t, ValidTransitions(status), "status %s should be terminal", status)
		assert.True(t, IsTerminal(status))
	}
}

func TestValidTransitionsUnknownStatus(t *testing.T) {
	assert.Empty(t, ValidTransitions(OrderStatus("definitely_not_a_status")))
	assert.False(t, IsTerminal(OrderStatus("definitely_not_a_status")))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusConfirmed))
	assert.True(t, CanTransition(OrderStatusProcessing, OrderStatusInProgress))
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusDelivered))
}
