package dto

// PaymentOrderRequest asks the server to create a gateway payment
// intent for one checkout attempt
type PaymentOrderRequest struct {
	UserID   int64   `json:"userId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
	Notes    string  `json:"notes"`
}

// PaymentOrderResponse is the server's view of the created gateway
// intent. Amount is in major currency units; the gateway wire format
// wants minor units.
type PaymentOrderResponse struct {
	OrderID     string  `json:"orderId"`
	Currency    string  `json:"currency"`
	Amount      float64 `json:"amount"`
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Prefill     string  `json:"prefill,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Theme       string  `json:"theme,omitempty"`
}

// VerificationRequest carries the gateway callback identifiers to the
// server-side signature check
type VerificationRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
	UserID            int64  `json:"userId"`
}
