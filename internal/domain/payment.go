package domain

import "math"

// PaymentIntent is a server-created, gateway-scoped authorization for
// one payment attempt. It lives for the duration of a single checkout
// attempt and is discarded when the flow closes.
type PaymentIntent struct {
	GatewayKey     string
	GatewayOrderID string
	Amount         float64 // major currency units, as returned by the server
	Currency       string
	DisplayName    string
	Description    string
	Receipt        string
}

// AmountMinorUnits converts the intent amount to integer minor
// currency units (paise for INR) for the gateway wire format
func (p *PaymentIntent) AmountMinorUnits() int64 {
	return int64(math.Round(p.Amount * 100))
}

// PaymentStatus is the terminal payment state reported to the order
// service after gateway verification
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)
