package factories

import (
	"fmt"
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/sobande/taskrr/internal/models"
)

var fake = faker.New()

// NotificationFactory builds synthetic push payloads for the "test
// notification" trigger and for exercising the pipeline without a broker.
type NotificationFactory struct {
	Rng *rand.Rand
}

// Payload generates a random payload of one of the five types.
func (nf *NotificationFactory) Payload() models.NotificationPayload {
	kinds := []func() models.NotificationPayload{
		nf.NewOrderPayload,
		nf.MessagePayload,
		nf.PaymentPayload,
		nf.ReviewPayload,
		nf.SystemPayload,
	}
	return kinds[nf.Rng.Intn(len(kinds))]()
}

// NewOrderPayload mimics the push sent to a provider when a customer places
// an order.
func (nf *NotificationFactory) NewOrderPayload() models.NotificationPayload {
	customer := fake.Person().Name()
	return models.NotificationPayload{
		ID:    cuid.New(),
		Title: "New Order Received!",
		Body:  fmt.Sprintf("%s placed an order", customer),
		Data: map[string]any{
			"type":         "order_received",
			"orderId":      cuid.New(),
			"customerName": customer,
		},
	}
}

func (nf *NotificationFactory) MessagePayload() models.NotificationPayload {
	return models.NotificationPayload{
		ID:    cuid.New(),
		Title: fmt.Sprintf("Message from %s", fake.Person().FirstName()),
		Body:  fake.Lorem().Sentence(8),
		Data: map[string]any{
			"senderId": cuid.New(),
		},
	}
}

func (nf *NotificationFactory) PaymentPayload() models.NotificationPayload {
	amount := 5 + nf.Rng.Float64()*195
	return models.NotificationPayload{
		ID:    cuid.New(),
		Title: "Payment received",
		Body:  fmt.Sprintf("You received a payment of %.2f", amount),
		Data: map[string]any{
			"type":      "payment_received",
			"paymentId": cuid.New(),
			"amount":    fmt.Sprintf("%.2f", amount),
		},
	}
}

func (nf *NotificationFactory) ReviewPayload() models.NotificationPayload {
	return models.NotificationPayload{
		ID:    cuid.New(),
		Title: "New review",
		Body:  fmt.Sprintf("%s left you a %d-star review", fake.Person().FirstName(), 1+nf.Rng.Intn(5)),
		Data: map[string]any{
			"type":     "review_posted",
			"reviewId": cuid.New(),
		},
	}
}

func (nf *NotificationFactory) SystemPayload() models.NotificationPayload {
	return models.NotificationPayload{
		ID:    cuid.New(),
		Title: "Scheduled maintenance",
		Body:  fake.Lorem().Sentence(10),
		Data:  map[string]any{},
	}
}
