package models

// CartItem is a service added to the customer's cart. Each item is scoped to
// the provider that offers it.
type CartItem struct {
	ServiceID         string  `json:"service_id"`
	ServiceProviderID string  `json:"service_provider_id"`
	Name              string  `json:"name"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
}

type Cart struct {
	Items           []CartItem `json:"items"`
	DeliveryAddress string     `json:"delivery_address,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// ProviderIDs returns the distinct provider ids in the cart, in first-seen
// order. Checkout creates one order per provider.
func (c *Cart) ProviderIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, item := range c.Items {
		if !seen[item.ServiceProviderID] {
			seen[item.ServiceProviderID] = true
			ids = append(ids, item.ServiceProviderID)
		}
	}
	return ids
}

// ItemsFor returns the cart items belonging to one provider.
func (c *Cart) ItemsFor(providerID string) []CartItem {
	var items []CartItem
	for _, item := range c.Items {
		if item.ServiceProviderID == providerID {
			items = append(items, item)
		}
	}
	return items
}
