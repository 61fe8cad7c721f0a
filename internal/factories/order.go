package factories

import (
	"math/rand"
	"time"

	"github.com/lucsky/cuid"

	"github.com/sobande/taskrr/internal/models"
)

// OrderFactory builds synthetic orders and carts for tests and demos.
type OrderFactory struct {
	Rng *rand.Rand
}

func (of *OrderFactory) Order(providerID string, status models.OrderStatus) models.Order {
	items := of.items(providerID, 1+of.Rng.Intn(3))
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	fee := subtotal * 0.1
	tax := subtotal * 0.075

	orderItems := make([]models.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = models.OrderItem{
			ServiceID: item.ServiceID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return models.Order{
		ID:                cuid.New(),
		CustomerID:        cuid.New(),
		CustomerName:      fake.Person().Name(),
		ServiceProviderID: providerID,
		Items:             orderItems,
		Pricing: models.Pricing{
			Subtotal:   subtotal,
			ServiceFee: fee,
			Tax:        tax,
			Total:      subtotal + fee + tax,
		},
		Status:    status,
		CreatedAt: time.Now().Add(-time.Duration(of.Rng.Intn(72)) * time.Hour),
		UpdatedAt: time.Now(),
	}
}

// Cart builds a cart spread across the given providers.
func (of *OrderFactory) Cart(providerIDs ...string) models.Cart {
	var cart models.Cart
	for _, providerID := range providerIDs {
		cart.Items = append(cart.Items, of.items(providerID, 1+of.Rng.Intn(2))...)
	}
	cart.DeliveryAddress = fake.Address().Address()
	return cart
}

func (of *OrderFactory) items(providerID string, count int) []models.CartItem {
	items := make([]models.CartItem, count)
	for i := range items {
		items[i] = models.CartItem{
			ServiceID:         cuid.New(),
			ServiceProviderID: providerID,
			Name:              fake.Company().BS(),
			Quantity:          1 + of.Rng.Intn(3),
			UnitPrice:         5 + of.Rng.Float64()*95,
		}
	}
	return items
}
