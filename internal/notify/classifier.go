package notify

import (
	"strings"

	"github.com/sobande/taskrr/internal/models"
)

// Classification is the classifier's verdict for one payload.
type Classification struct {
	Type     models.NotificationType
	Priority models.NotificationPriority
}

// rule is one classification heuristic. Rules are evaluated in order and the
// first match wins, so precedence lives in the slice, not in control flow.
type rule struct {
	name  string
	match func(p models.NotificationPayload, d models.PayloadData) (models.NotificationType, bool)
}

var rules = []rule{
	{
		name: "explicit data.type",
		match: func(p models.NotificationPayload, d models.PayloadData) (models.NotificationType, bool) {
			return typeFromText(d.Type)
		},
	},
	{
		name: "identifier fields",
		match: func(p models.NotificationPayload, d models.PayloadData) (models.NotificationType, bool) {
			switch {
			case d.OrderID != "":
				return models.NotificationTypeOrder, true
			case d.SenderID != "":
				return models.NotificationTypeMessage, true
			case d.PaymentID != "":
				return models.NotificationTypePayment, true
			case d.ReviewID != "":
				return models.NotificationTypeReview, true
			}
			return "", false
		},
	},
	{
		name: "title/body keywords",
		match: func(p models.NotificationPayload, d models.PayloadData) (models.NotificationType, bool) {
			return typeFromText(p.Title + " " + p.Body)
		},
	},
}

// typeFromText finds the first notification type whose keyword appears in
// the text, case-insensitively.
func typeFromText(text string) (models.NotificationType, bool) {
	lower := strings.ToLower(text)
	for _, t := range []models.NotificationType{
		models.NotificationTypeOrder,
		models.NotificationTypeMessage,
		models.NotificationTypePayment,
		models.NotificationTypeReview,
	} {
		if strings.Contains(lower, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Classify assigns a type and priority to a raw payload.
//
// Priority policy: order notifications are high when the payload indicates a
// newly received order and medium otherwise; messages are medium; payment,
// review and system notifications are low. The original client carried
// several divergent priority rules; this is the one canonical policy.
func Classify(p models.NotificationPayload) Classification {
	data := DecodeData(p.Data)

	result := models.NotificationTypeSystem
	for _, r := range rules {
		if t, ok := r.match(p, data); ok {
			result = t
			break
		}
	}

	return Classification{Type: result, Priority: priorityFor(result, p, data)}
}

func priorityFor(t models.NotificationType, p models.NotificationPayload, d models.PayloadData) models.NotificationPriority {
	switch t {
	case models.NotificationTypeOrder:
		if isNewOrder(p, d) {
			return models.PriorityHigh
		}
		return models.PriorityMedium
	case models.NotificationTypeMessage:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// isNewOrder detects a freshly received order from either the structured
// type or the display text.
func isNewOrder(p models.NotificationPayload, d models.PayloadData) bool {
	if strings.Contains(strings.ToLower(d.Type), "order_received") ||
		strings.Contains(strings.ToLower(d.Type), "new_order") {
		return true
	}
	text := strings.ToLower(p.Title + " " + p.Body)
	return strings.Contains(text, "new order")
}
