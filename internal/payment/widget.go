package payment

import "context"

// LaunchParams is everything the external payment widget needs for
// one payment attempt. Amount is in integer minor currency units
// (paise for INR).
type LaunchParams struct {
	Key            string
	Amount         int64
	Currency       string
	Name           string
	Description    string
	GatewayOrderID string
	PrefillEmail   string
	PrefillContact string
	Notes          map[string]string
	ThemeColor     string
}

// CallbackResult carries the gateway-issued identifiers delivered by
// the widget after the user completes payment
type CallbackResult struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// Complete reports whether all three gateway identifiers are present
func (r *CallbackResult) Complete() bool {
	return r.GatewayOrderID != "" && r.GatewayPaymentID != "" && r.Signature != ""
}

// Widget is the boundary to the external payment surface. Launch
// hands control to the gateway and returns a channel that delivers at
// most one CallbackResult; the channel is closed without a result
// when the user dismisses the widget. The coordinator owns every
// state transition; the widget is a pluggable collaborator.
type Widget interface {
	Launch(ctx context.Context, params *LaunchParams) (<-chan CallbackResult, error)
	Name() string
}
