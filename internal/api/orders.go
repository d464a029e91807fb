package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Shanmukha18/unibuy-client/internal/domain"
)

// GetUserOrders fetches the order history for a user
func (c *Client) GetUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	path := fmt.Sprintf("/orders/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Checkout converts the user's cart into an order
func (c *Client) Checkout(ctx context.Context, userID int64) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/orders/checkout/%d", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderPayment marks an order's payment outcome after gateway
// verification
func (c *Client) UpdateOrderPayment(ctx context.Context, orderID int64, paymentID string, status domain.PaymentStatus) error {
	path := fmt.Sprintf("/orders/%d/payment", orderID)
	query := url.Values{
		"paymentId":     []string{paymentID},
		"paymentStatus": []string{string(status)},
	}
	return c.do(ctx, http.MethodPut, path, query, nil, nil)
}
