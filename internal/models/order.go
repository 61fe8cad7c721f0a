package models

import "time"

type Order struct {
	ID                string         `json:"id"`
	CustomerID        string         `json:"customer_id"`
	CustomerName      string         `json:"customer_name"`
	CustomerPhone     string         `json:"customer_phone,omitempty"`
	ServiceProviderID string         `json:"service_provider_id"`
	Items             []OrderItem    `json:"items"`
	Pricing           Pricing        `json:"pricing"`
	Status            OrderStatus    `json:"status"`
	DeliveryAddress   string         `json:"delivery_address,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	Timeline          []StatusChange `json:"timeline,omitempty"`
}

type OrderItem struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Pricing is the server-computed cost breakdown for an order.
type Pricing struct {
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"service_fee"`
	Tax        float64 `json:"tax"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
}

// StatusChange is one entry in an order's status timeline.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	ChangedBy string      `json:"changed_by,omitempty"`
	ChangedAt time.Time   `json:"changed_at"`
	Note      string      `json:"note,omitempty"`
}

// OrderPreview is a read-only stand-in rendered when an order referenced by a
// notification cannot be fetched with the caller's credentials. It is built
// from notification payload fields only.
type OrderPreview struct {
	OrderID           string `json:"order_id"`
	ServiceProviderID string `json:"service_provider_id,omitempty"`
	Title             string `json:"title,omitempty"`
	Summary           string `json:"summary,omitempty"`
	Message           string `json:"message"`
}

// Subtotal sums the line items client-side, for display before the server has
// returned authoritative pricing.
func (o *Order) Subtotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
