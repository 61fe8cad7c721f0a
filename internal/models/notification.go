package models

import "time"

type NotificationType string

const (
	NotificationTypeOrder   NotificationType = "order"
	NotificationTypeMessage NotificationType = "message"
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeReview  NotificationType = "review"
	NotificationTypeSystem  NotificationType = "system"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is a classified, user-facing message for the current session.
// It lives only in memory; deleting it or ending the session destroys it.
type Notification struct {
	ID        string               `json:"id"`
	Type      NotificationType     `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Timestamp time.Time            `json:"timestamp"`
	Read      bool                 `json:"read"`
	Priority  NotificationPriority `json:"priority"`
	Data      map[string]any       `json:"data,omitempty"`
}

// NotificationPayload is the raw input from a push or local notification
// bridge, consumed immediately to produce a Notification.
type NotificationPayload struct {
	ID    string         `json:"id,omitempty"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

// PayloadData is the typed view of a payload's opaque data bag. Fields are
// decoded weakly since bridges deliver strings for everything.
type PayloadData struct {
	Type              string `mapstructure:"type"`
	OrderID           string `mapstructure:"orderId"`
	SenderID          string `mapstructure:"senderId"`
	PaymentID         string `mapstructure:"paymentId"`
	ReviewID          string `mapstructure:"reviewId"`
	ServiceProviderID string `mapstructure:"serviceProviderId"`
	CustomerName      string `mapstructure:"customerName"`
	Amount            string `mapstructure:"amount"`
}
