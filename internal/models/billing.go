package models

import "time"

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionSucceeded TransactionStatus = "succeeded"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction is a payment record tied to an order.
type Transaction struct {
	ID        string            `json:"id"`
	OrderID   string            `json:"order_id"`
	UserID    string            `json:"user_id"`
	Amount    float64           `json:"amount"`
	Currency  string            `json:"currency"`
	Method    string            `json:"method"`
	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// BillingSummary aggregates a provider's earnings for a period.
type BillingSummary struct {
	ProviderID  string    `json:"provider_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	GrossAmount float64   `json:"gross_amount"`
	Fees        float64   `json:"fees"`
	NetAmount   float64   `json:"net_amount"`
	OrderCount  int       `json:"order_count"`
}

type PayoutMethod struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Default  bool   `json:"default"`
	Masked   string `json:"masked"`
	Provider string `json:"provider"`
}
