package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Shanmukha18/unibuy-client/internal/domain"
	"go.uber.org/zap"
)

// cartPayload is the expected minimal shape of a cart response. The
// pointer distinguishes "items present" from an arbitrary object that
// happens to decode cleanly.
type cartPayload struct {
	Items *[]domain.CartItem `json:"items"`
}

// GetCart fetches the current server-side cart
func (c *Client) GetCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	path := fmt.Sprintf("/cart/%d", userID)
	return c.doCart(ctx, http.MethodGet, path, nil)
}

// AddToCart adds quantity units of a product and returns the updated cart
func (c *Client) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*domain.Cart, error) {
	path := fmt.Sprintf("/cart/%d/add/%d", userID, productID)
	return c.doCart(ctx, http.MethodPost, path, quantityQuery(quantity))
}

// UpdateCartItem sets the quantity of a product and returns the updated cart
func (c *Client) UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) (*domain.Cart, error) {
	path := fmt.Sprintf("/cart/%d/update/%d", userID, productID)
	return c.doCart(ctx, http.MethodPut, path, quantityQuery(quantity))
}

// RemoveCartItem removes a product and returns the updated cart
func (c *Client) RemoveCartItem(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	path := fmt.Sprintf("/cart/%d/remove/%d", userID, productID)
	return c.doCart(ctx, http.MethodDelete, path, nil)
}

// ClearCart empties the server-side cart
func (c *Client) ClearCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	path := fmt.Sprintf("/cart/%d/clear", userID)
	return c.doCart(ctx, http.MethodDelete, path, nil)
}

// doCart issues a cart call and shape-validates the response: a
// successful response without the expected item sequence yields the
// empty cart rather than propagating malformed data into client state.
func (c *Client) doCart(ctx context.Context, method, path string, query url.Values) (*domain.Cart, error) {
	var raw json.RawMessage
	if err := c.do(ctx, method, path, query, nil, &raw); err != nil {
		return nil, err
	}

	var payload cartPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Items == nil {
		c.log.Warn("cart response missing item sequence, falling back to empty cart",
			zap.String("method", method), zap.String("path", path))
		return domain.EmptyCart(), nil
	}
	return &domain.Cart{Items: *payload.Items}, nil
}

func quantityQuery(quantity int) url.Values {
	return url.Values{"quantity": []string{strconv.Itoa(quantity)}}
}
