package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// WebhookRequest is the payment provider's notification payload.
type WebhookRequest struct {
	OrderID   uint            `json:"orderId"   validate:"required"`
	Status    string          `json:"status"    validate:"required"`
	PaymentID string          `json:"paymentId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PaymentResponse wraps the provider session handle plus the persisted Pago id.
type PaymentResponse struct {
	SessionID  string `json:"sessionId"`
	PaymentURL string `json:"paymentUrl"`
	PagoID     uint   `json:"pagoId"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}

type CheckoutResponse struct {
	Order   OrderWithItems  `json:"order"`
	Payment PaymentResponse `json:"payment"`
}
