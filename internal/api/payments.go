package api

import (
	"context"
	"net/http"

	"github.com/Shanmukha18/unibuy-client/internal/dto"
)

// CreatePaymentOrder asks the server to create a gateway payment
// intent for one checkout attempt
func (c *Client) CreatePaymentOrder(ctx context.Context, req *dto.PaymentOrderRequest) (*dto.PaymentOrderResponse, error) {
	var resp dto.PaymentOrderResponse
	if err := c.do(ctx, http.MethodPost, "/payments/create-order", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyPayment submits the gateway callback identifiers for
// server-side signature verification. Only an explicit true means the
// payment is confirmed.
func (c *Client) VerifyPayment(ctx context.Context, req *dto.VerificationRequest) (bool, error) {
	var verified bool
	if err := c.do(ctx, http.MethodPost, "/payments/verify", nil, req, &verified); err != nil {
		return false, err
	}
	return verified, nil
}
