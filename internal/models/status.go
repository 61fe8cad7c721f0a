package models

// OrderStatus is the lifecycle state of an order. The set is closed; the
// server is the authority on transitions, the client only gates its UI.
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusConfirmed         OrderStatus = "confirmed"
	OrderStatusProcessing        OrderStatus = "processing"
	OrderStatusInProgress        OrderStatus = "in-progress"
	OrderStatusReady             OrderStatus = "ready"
	OrderStatusPackingInProgress OrderStatus = "packing_in_progress"
	OrderStatusPacked            OrderStatus = "packed"
	OrderStatusReadyToDispatch   OrderStatus = "ready_to_dispatch"
	OrderStatusInTransit         OrderStatus = "in_transit"
	OrderStatusDelivered         OrderStatus = "delivered"
	OrderStatusCompleted         OrderStatus = "completed"
	OrderStatusCancelled         OrderStatus = "cancelled"
	OrderStatusRejected          OrderStatus = "rejected"
)

// statusTransitions maps each status to the statuses it may legally move to.
// completed, cancelled and rejected are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:           {OrderStatusConfirmed, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusConfirmed:         {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:        {OrderStatusReady, OrderStatusPackingInProgress, OrderStatusCancelled, OrderStatusInProgress},
	OrderStatusInProgress:        {OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusReady:             {OrderStatusReadyToDispatch, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusPackingInProgress: {OrderStatusPacked, OrderStatusCancelled},
	OrderStatusPacked:            {OrderStatusReadyToDispatch, OrderStatusCancelled},
	OrderStatusReadyToDispatch:   {OrderStatusInTransit, OrderStatusCancelled},
	OrderStatusInTransit:         {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:         {OrderStatusCompleted},
	OrderStatusCompleted:         {},
	OrderStatusCancelled:         {},
	OrderStatusRejected:          {},
}

// ValidTransitions returns the statuses the given status may move to next.
// Unknown statuses yield an empty set.
func ValidTransitions(s OrderStatus) []OrderStatus {
	next := statusTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func IsTerminal(s OrderStatus) bool {
	known, ok := statusTransitions[s]
	return ok && len(known) == 0
}
